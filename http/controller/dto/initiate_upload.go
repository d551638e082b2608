package dto

import "time"

// InitiateUploadRequest mirrors what the frontend knows about the file it is
// about to send. Mimetype may be blank, some browsers do not report one.
type InitiateUploadRequest struct {
	Filename string `json:"filename" binding:"required"`
	Mimetype string `json:"mimetype"`
}

type InitiateUploadResponse struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

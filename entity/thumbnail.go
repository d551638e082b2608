package entity

import (
	"time"

	"github.com/google/uuid"
)

// Thumbnail is the user-provided poster image of a video, one per video.
type Thumbnail struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	VideoID     uuid.UUID   `json:"video_id" gorm:"type:uuid;not null;uniqueIndex"`
	UploadState UploadState `json:"upload_state" gorm:"type:varchar(20);not null;default:'pending'"`
	UploadedOn  *time.Time  `json:"uploaded_on"`
	CreatedAt   time.Time   `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"autoUpdateTime"`

	Video *Video `json:"video,omitempty" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
}

func (t *Thumbnail) IsReadyToShow() bool {
	return t.UploadedOn != nil && t.UploadState == UploadStateReady
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	PlaylistID uuid.UUID `json:"playlist_id" gorm:"type:uuid;not null;index"`
	Title      string    `json:"title" gorm:"type:varchar(255);not null"`
	// Extension is stored without the leading dot, e.g. "pdf". Empty when the
	// uploaded file carried none.
	Extension    string      `json:"extension" gorm:"type:varchar(255)"`
	UploadState  UploadState `json:"upload_state" gorm:"type:varchar(20);not null;default:'pending'"`
	UploadedOn   *time.Time  `json:"uploaded_on"`
	ShowDownload bool        `json:"show_download" gorm:"not null;default:true"`
	CreatedAt    time.Time   `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt    time.Time   `json:"updated_at" gorm:"autoUpdateTime"`

	Playlist *Playlist `json:"playlist,omitempty" gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE"`
}

func (d *Document) IsReadyToShow() bool {
	return d.UploadedOn != nil && d.UploadState == UploadStateReady
}

// ExtensionWithDot returns ".pdf" style extensions for URL and filename
// interpolation, or an empty string when the document has none.
func (d *Document) ExtensionWithDot() string {
	if d.Extension == "" {
		return ""
	}
	return "." + d.Extension
}

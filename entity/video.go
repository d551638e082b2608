package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Video struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	PlaylistID  uuid.UUID   `json:"playlist_id" gorm:"type:uuid;not null;index"`
	Title       string      `json:"title" gorm:"type:varchar(255);not null"`
	Description string      `json:"description" gorm:"type:text"`
	UploadState UploadState `json:"upload_state" gorm:"type:varchar(20);not null;default:'pending'"`
	UploadedOn  *time.Time  `json:"uploaded_on"`
	// Resolutions overrides the deployment-wide resolution set for this video
	// once transcoding reports what it actually produced. Null means the
	// configured default applies.
	Resolutions  datatypes.JSON `json:"resolutions" gorm:"type:jsonb"`
	ShowDownload bool           `json:"show_download" gorm:"not null;default:true"`
	CreatedAt    time.Time      `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`

	Playlist        *Playlist        `json:"playlist,omitempty" gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE"`
	Thumbnail       *Thumbnail       `json:"thumbnail,omitempty" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
	TimedTextTracks []TimedTextTrack `json:"timed_text_tracks,omitempty" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
}

// IsReadyToShow reports whether delivery URLs may be exposed. The upload
// timestamp is the source of truth: a record whose state was forced to ready
// without a completed upload stays hidden.
func (v *Video) IsReadyToShow() bool {
	return v.UploadedOn != nil && v.UploadState == UploadStateReady
}

// ResolutionSet returns the per-video resolution list, or fallback when none
// has been recorded yet.
func (v *Video) ResolutionSet(fallback []int) []int {
	if len(v.Resolutions) == 0 {
		return fallback
	}
	var resolutions []int
	if err := json.Unmarshal(v.Resolutions, &resolutions); err != nil || len(resolutions) == 0 {
		return fallback
	}
	return resolutions
}

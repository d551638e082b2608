package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimedTextMode distinguishes the purpose of a timed text track.
type TimedTextMode string

const (
	TimedTextModeSubtitle      TimedTextMode = "st"
	TimedTextModeTranscript    TimedTextMode = "ts"
	TimedTextModeClosedCaption TimedTextMode = "cc"
)

// TimedTextModes lists every valid mode tag, in the order used to build the
// storage key pattern.
var TimedTextModes = []TimedTextMode{
	TimedTextModeSubtitle,
	TimedTextModeTranscript,
	TimedTextModeClosedCaption,
}

type TimedTextTrack struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	VideoID  uuid.UUID `json:"video_id" gorm:"type:uuid;not null;index:idx_track_video_lang_mode,unique"`
	Language string    `json:"language" gorm:"type:varchar(10);not null;index:idx_track_video_lang_mode,unique"`
	// Mode may be empty, in which case the track is a plain subtitle file and
	// the mode suffix is omitted from its delivery URL.
	Mode        TimedTextMode `json:"mode" gorm:"type:varchar(2);index:idx_track_video_lang_mode,unique"`
	UploadState UploadState   `json:"upload_state" gorm:"type:varchar(20);not null;default:'pending'"`
	UploadedOn  *time.Time    `json:"uploaded_on"`
	CreatedAt   time.Time     `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	Video *Video `json:"video,omitempty" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
}

func (t *TimedTextTrack) IsReadyToShow() bool {
	return t.UploadedOn != nil && t.UploadState == UploadStateReady
}

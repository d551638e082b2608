package entity

import (
	"time"

	"github.com/google/uuid"
)

// Playlist groups the videos and documents belonging to one LTI context.
// Its title feeds the attachment filenames exposed on delivery URLs.
type Playlist struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	LTIID     string    `json:"lti_id" gorm:"type:varchar(255);index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Videos    []Video    `json:"videos,omitempty" gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE"`
	Documents []Document `json:"documents,omitempty" gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE"`
}

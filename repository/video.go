package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tnqbao/gau-media-service/entity"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(video *entity.Video) error {
	return r.db.Create(video).Error
}

func (r *VideoRepository) FindByID(id uuid.UUID) (*entity.Video, error) {
	var video entity.Video
	err := r.db.
		Preload("Playlist").
		Preload("Thumbnail").
		Preload("TimedTextTracks").
		Where("id = ?", id).
		First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &video, nil
}

// UpdateUploadState applies a validated state transition. Both columns travel
// in one UPDATE so a crash or a racing notification can never leave the
// record half mutated; uploaded_on is only stamped when the upload completed.
func (r *VideoRepository) UpdateUploadState(id uuid.UUID, state entity.UploadState, uploadedOn *time.Time) error {
	updates := map[string]interface{}{
		"upload_state": state,
	}
	if state == entity.UploadStateReady {
		updates["uploaded_on"] = uploadedOn
	}

	result := r.db.Model(&entity.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssetNotFound
	}
	return nil
}

func (r *VideoRepository) UpdateResolutions(id uuid.UUID, resolutions []byte) error {
	return r.db.Model(&entity.Video{}).Where("id = ?", id).
		Update("resolutions", resolutions).Error
}

func (r *VideoRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&entity.Video{}, "id = ?", id).Error
}

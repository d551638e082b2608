package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tnqbao/gau-media-service/entity"
)

type TimedTextTrackRepository struct {
	db *gorm.DB
}

func NewTimedTextTrackRepository(db *gorm.DB) *TimedTextTrackRepository {
	return &TimedTextTrackRepository{db: db}
}

func (r *TimedTextTrackRepository) Create(track *entity.TimedTextTrack) error {
	return r.db.Create(track).Error
}

func (r *TimedTextTrackRepository) FindByID(id uuid.UUID) (*entity.TimedTextTrack, error) {
	var track entity.TimedTextTrack
	err := r.db.
		Preload("Video").
		Where("id = ?", id).
		First(&track).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &track, nil
}

func (r *TimedTextTrackRepository) FindByVideoID(videoID uuid.UUID) ([]entity.TimedTextTrack, error) {
	var tracks []entity.TimedTextTrack
	err := r.db.Where("video_id = ?", videoID).Find(&tracks).Error
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *TimedTextTrackRepository) UpdateUploadState(id uuid.UUID, state entity.UploadState, uploadedOn *time.Time) error {
	updates := map[string]interface{}{
		"upload_state": state,
	}
	if state == entity.UploadStateReady {
		updates["uploaded_on"] = uploadedOn
	}

	result := r.db.Model(&entity.TimedTextTrack{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssetNotFound
	}
	return nil
}

func (r *TimedTextTrackRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&entity.TimedTextTrack{}, "id = ?", id).Error
}

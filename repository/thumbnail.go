package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tnqbao/gau-media-service/entity"
)

type ThumbnailRepository struct {
	db *gorm.DB
}

func NewThumbnailRepository(db *gorm.DB) *ThumbnailRepository {
	return &ThumbnailRepository{db: db}
}

func (r *ThumbnailRepository) Create(thumbnail *entity.Thumbnail) error {
	return r.db.Create(thumbnail).Error
}

func (r *ThumbnailRepository) FindByID(id uuid.UUID) (*entity.Thumbnail, error) {
	var thumbnail entity.Thumbnail
	err := r.db.
		Preload("Video").
		Where("id = ?", id).
		First(&thumbnail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &thumbnail, nil
}

func (r *ThumbnailRepository) FindByVideoID(videoID uuid.UUID) (*entity.Thumbnail, error) {
	var thumbnail entity.Thumbnail
	err := r.db.Where("video_id = ?", videoID).First(&thumbnail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &thumbnail, nil
}

func (r *ThumbnailRepository) UpdateUploadState(id uuid.UUID, state entity.UploadState, uploadedOn *time.Time) error {
	updates := map[string]interface{}{
		"upload_state": state,
	}
	if state == entity.UploadStateReady {
		updates["uploaded_on"] = uploadedOn
	}

	result := r.db.Model(&entity.Thumbnail{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssetNotFound
	}
	return nil
}

func (r *ThumbnailRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&entity.Thumbnail{}, "id = ?", id).Error
}

package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tnqbao/gau-media-service/entity"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(playlist *entity.Playlist) error {
	return r.db.Create(playlist).Error
}

func (r *PlaylistRepository) FindByID(id uuid.UUID) (*entity.Playlist, error) {
	var playlist entity.Playlist
	err := r.db.Where("id = ?", id).First(&playlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &playlist, nil
}

func (r *PlaylistRepository) FindByLTIID(ltiID string) (*entity.Playlist, error) {
	var playlist entity.Playlist
	err := r.db.Where("lti_id = ?", ltiID).First(&playlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &playlist, nil
}

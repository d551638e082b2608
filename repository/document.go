package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tnqbao/gau-media-service/entity"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(document *entity.Document) error {
	return r.db.Create(document).Error
}

func (r *DocumentRepository) FindByID(id uuid.UUID) (*entity.Document, error) {
	var document entity.Document
	err := r.db.
		Preload("Playlist").
		Where("id = ?", id).
		First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &document, nil
}

func (r *DocumentRepository) UpdateUploadState(id uuid.UUID, state entity.UploadState, uploadedOn *time.Time) error {
	updates := map[string]interface{}{
		"upload_state": state,
	}
	if state == entity.UploadStateReady {
		updates["uploaded_on"] = uploadedOn
	}

	result := r.db.Model(&entity.Document{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssetNotFound
	}
	return nil
}

// UpdateExtension records the extension parsed from the storage key once the
// uploaded file reports one.
func (r *DocumentRepository) UpdateExtension(id uuid.UUID, extension string) error {
	return r.db.Model(&entity.Document{}).Where("id = ?", id).
		Update("extension", extension).Error
}

func (r *DocumentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&entity.Document{}, "id = ?", id).Error
}

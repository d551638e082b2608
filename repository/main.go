package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tnqbao/gau-media-service/infra"
)

// ErrAssetNotFound is returned when a well-formed notification references a
// resource this service never created. The notification is rejected; nothing
// is created on the fly.
var ErrAssetNotFound = errors.New("asset not found")

type Repository struct {
	PlaylistRepo       *PlaylistRepository
	VideoRepo          *VideoRepository
	ThumbnailRepo      *ThumbnailRepository
	TimedTextTrackRepo *TimedTextTrackRepository
	DocumentRepo       *DocumentRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = NewRepository(infra.Postgres.DB)
	return repository
}

// NewRepository builds a repository set over any gorm handle. Tests use it
// with an in-memory database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		PlaylistRepo:       NewPlaylistRepository(db),
		VideoRepo:          NewVideoRepository(db),
		ThumbnailRepo:      NewThumbnailRepository(db),
		TimedTextTrackRepo: NewTimedTextTrackRepository(db),
		DocumentRepo:       NewDocumentRepository(db),
	}
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

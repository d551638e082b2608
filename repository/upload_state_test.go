package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tnqbao/gau-media-service/entity"
	"github.com/tnqbao/gau-media-service/utils"
)

func setupTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying database: %v", err)
	}
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entity.Playlist{},
		&entity.Video{},
		&entity.Thumbnail{},
		&entity.TimedTextTrack{},
		&entity.Document{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewRepository(db)
}

func seedVideo(t *testing.T, repo *Repository) *entity.Video {
	t.Helper()
	playlist := &entity.Playlist{ID: uuid.New(), Title: "Math 101"}
	if err := repo.PlaylistRepo.Create(playlist); err != nil {
		t.Fatalf("failed to seed playlist: %v", err)
	}
	video := &entity.Video{
		ID:          uuid.New(),
		PlaylistID:  playlist.ID,
		Title:       "Lecture 1",
		UploadState: entity.UploadStatePending,
	}
	if err := repo.VideoRepo.Create(video); err != nil {
		t.Fatalf("failed to seed video: %v", err)
	}
	return video
}

func videoKey(t *testing.T, video *entity.Video, stamp string) *utils.StorageKey {
	t.Helper()
	key, err := utils.ParseKey(video.ID.String() + "/video/" + video.ID.String() + "/" + stamp)
	if err != nil {
		t.Fatalf("failed to build key: %v", err)
	}
	return key
}

func TestApplyUploadStateReadySetsUploadedOn(t *testing.T) {
	repo := setupTestRepository(t)
	video := seedVideo(t, repo)

	err := repo.ApplyUploadState(videoKey(t, video, "1700000000"), entity.UploadStateReady, UploadStateExtra{
		Resolutions: []int{240, 720},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := repo.VideoRepo.FindByID(video.ID)
	if err != nil {
		t.Fatalf("failed to reload video: %v", err)
	}
	if stored.UploadState != entity.UploadStateReady {
		t.Errorf("expected ready, got %s", stored.UploadState)
	}
	if stored.UploadedOn == nil || stored.UploadedOn.Unix() != 1700000000 {
		t.Errorf("expected uploaded_on from the key stamp, got %v", stored.UploadedOn)
	}
	if got := stored.ResolutionSet(nil); len(got) != 2 || got[0] != 240 || got[1] != 720 {
		t.Errorf("expected recorded resolutions [240 720], got %v", got)
	}
	if !stored.IsReadyToShow() {
		t.Error("expected is_ready_to_show true after a completed upload")
	}
}

func TestApplyUploadStateProcessingLeavesUploadedOn(t *testing.T) {
	repo := setupTestRepository(t)
	video := seedVideo(t, repo)

	err := repo.ApplyUploadState(videoKey(t, video, "1700000000"), entity.UploadStateProcessing, UploadStateExtra{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := repo.VideoRepo.FindByID(video.ID)
	if stored.UploadState != entity.UploadStateProcessing {
		t.Errorf("expected processing, got %s", stored.UploadState)
	}
	if stored.UploadedOn != nil {
		t.Errorf("uploaded_on must stay unset before the upload completes, got %v", stored.UploadedOn)
	}
}

func TestApplyUploadStateErrorKeepsPreviousUpload(t *testing.T) {
	repo := setupTestRepository(t)
	video := seedVideo(t, repo)

	if err := repo.ApplyUploadState(videoKey(t, video, "1700000000"), entity.UploadStateReady, UploadStateExtra{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A later failed attempt must not wipe the timestamp of the version that
	// is still being served.
	if err := repo.ApplyUploadState(videoKey(t, video, "1700000100"), entity.UploadStateError, UploadStateExtra{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := repo.VideoRepo.FindByID(video.ID)
	if stored.UploadState != entity.UploadStateError {
		t.Errorf("expected error, got %s", stored.UploadState)
	}
	if stored.UploadedOn == nil || stored.UploadedOn.Unix() != 1700000000 {
		t.Errorf("expected uploaded_on to keep the last completed upload, got %v", stored.UploadedOn)
	}
	if stored.IsReadyToShow() {
		t.Error("expected is_ready_to_show false while in error state")
	}
}

func TestApplyUploadStateUnknownAsset(t *testing.T) {
	repo := setupTestRepository(t)

	id := uuid.New()
	key, err := utils.ParseKey(id.String() + "/video/" + id.String() + "/1700000000")
	if err != nil {
		t.Fatalf("failed to build key: %v", err)
	}
	err = repo.ApplyUploadState(key, entity.UploadStateReady, UploadStateExtra{})
	if !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestApplyUploadStateDocumentExtension(t *testing.T) {
	repo := setupTestRepository(t)
	playlist := &entity.Playlist{ID: uuid.New(), Title: "Math 101"}
	if err := repo.PlaylistRepo.Create(playlist); err != nil {
		t.Fatalf("failed to seed playlist: %v", err)
	}
	document := &entity.Document{
		ID:          uuid.New(),
		PlaylistID:  playlist.ID,
		Title:       "My Report",
		UploadState: entity.UploadStatePending,
	}
	if err := repo.DocumentRepo.Create(document); err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}

	key, err := utils.ParseKey(document.ID.String() + "/document/" + document.ID.String() + "/1700000000.pdf")
	if err != nil {
		t.Fatalf("failed to build key: %v", err)
	}
	err = repo.ApplyUploadState(key, entity.UploadStateReady, UploadStateExtra{Extension: "pdf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := repo.DocumentRepo.FindByID(document.ID)
	if stored.Extension != "pdf" {
		t.Errorf("expected extension pdf, got %q", stored.Extension)
	}
	if !stored.IsReadyToShow() {
		t.Error("expected is_ready_to_show true")
	}
}

func TestApplyUploadStateSubresources(t *testing.T) {
	repo := setupTestRepository(t)
	video := seedVideo(t, repo)

	thumbnail := &entity.Thumbnail{ID: uuid.New(), VideoID: video.ID, UploadState: entity.UploadStatePending}
	if err := repo.ThumbnailRepo.Create(thumbnail); err != nil {
		t.Fatalf("failed to seed thumbnail: %v", err)
	}
	track := &entity.TimedTextTrack{
		ID:          uuid.New(),
		VideoID:     video.ID,
		Language:    "fr-ca",
		Mode:        entity.TimedTextModeClosedCaption,
		UploadState: entity.UploadStatePending,
	}
	if err := repo.TimedTextTrackRepo.Create(track); err != nil {
		t.Fatalf("failed to seed track: %v", err)
	}

	thumbKey, err := utils.ParseKey(video.ID.String() + "/thumbnail/" + thumbnail.ID.String() + "/1700000000")
	if err != nil {
		t.Fatalf("failed to build thumbnail key: %v", err)
	}
	if err := repo.ApplyUploadState(thumbKey, entity.UploadStateReady, UploadStateExtra{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trackKey, err := utils.ParseKey(video.ID.String() + "/timedtexttrack/" + track.ID.String() + "/1700000000_fr-ca_cc.vtt")
	if err != nil {
		t.Fatalf("failed to build track key: %v", err)
	}
	if err := repo.ApplyUploadState(trackKey, entity.UploadStateReady, UploadStateExtra{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	storedThumb, _ := repo.ThumbnailRepo.FindByID(thumbnail.ID)
	if !storedThumb.IsReadyToShow() {
		t.Error("expected thumbnail to be ready")
	}
	storedTrack, _ := repo.TimedTextTrackRepo.FindByID(track.ID)
	if !storedTrack.IsReadyToShow() {
		t.Error("expected track to be ready")
	}

	// The video record itself is untouched by subresource notifications.
	storedVideo, _ := repo.VideoRepo.FindByID(video.ID)
	if storedVideo.UploadState != entity.UploadStatePending {
		t.Errorf("video state must stay pending, got %s", storedVideo.UploadState)
	}
}

func TestUpdateUploadStateReadyRequiresTimestamp(t *testing.T) {
	repo := setupTestRepository(t)
	video := seedVideo(t, repo)

	uploadedOn := time.Unix(1700000000, 0).UTC()
	if err := repo.VideoRepo.UpdateUploadState(video.ID, entity.UploadStateReady, &uploadedOn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Resetting to pending keeps the timestamp of the served version.
	if err := repo.VideoRepo.UpdateUploadState(video.ID, entity.UploadStatePending, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := repo.VideoRepo.FindByID(video.ID)
	if stored.UploadedOn == nil {
		t.Error("pending reset must not clear uploaded_on")
	}
	if stored.IsReadyToShow() {
		t.Error("expected is_ready_to_show false after a pending reset")
	}
}

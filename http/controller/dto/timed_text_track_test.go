package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tnqbao/gau-media-service/entity"
)

func TestBuildTimedTextTrackResponse(t *testing.T) {
	videoID := uuid.MustParse("660e8400-e29b-41d4-a716-446655440000")
	uploadedOn := time.Unix(1700000000, 0).UTC()

	tests := []struct {
		name     string
		language string
		mode     entity.TimedTextMode
		wantURL  string
	}{
		{
			"closed caption",
			"fr-ca", entity.TimedTextModeClosedCaption,
			"https://cdn.example.com/660e8400-e29b-41d4-a716-446655440000/timedtext/1700000000_fr-ca_cc.vtt",
		},
		{
			"subtitle",
			"en", entity.TimedTextModeSubtitle,
			"https://cdn.example.com/660e8400-e29b-41d4-a716-446655440000/timedtext/1700000000_en_st.vtt",
		},
		{
			"no mode",
			"en", "",
			"https://cdn.example.com/660e8400-e29b-41d4-a716-446655440000/timedtext/1700000000_en.vtt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := &entity.TimedTextTrack{
				ID:          uuid.New(),
				VideoID:     videoID,
				Language:    tt.language,
				Mode:        tt.mode,
				UploadState: entity.UploadStateReady,
				UploadedOn:  &uploadedOn,
			}
			resp, err := BuildTimedTextTrackResponse(track, newTestCDN(t, false))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.URL != tt.wantURL {
				t.Errorf("url:\n got %s\nwant %s", resp.URL, tt.wantURL)
			}
			if !resp.IsReadyToShow {
				t.Error("expected is_ready_to_show true")
			}
		})
	}
}

func TestBuildTimedTextTrackResponsePending(t *testing.T) {
	track := &entity.TimedTextTrack{
		ID:          uuid.New(),
		VideoID:     uuid.New(),
		Language:    "en",
		Mode:        entity.TimedTextModeSubtitle,
		UploadState: entity.UploadStatePending,
	}
	resp, err := BuildTimedTextTrackResponse(track, newTestCDN(t, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.URL != "" {
		t.Errorf("expected empty url before any upload, got %s", resp.URL)
	}
}

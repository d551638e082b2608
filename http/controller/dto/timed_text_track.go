package dto

import (
	"fmt"

	"github.com/tnqbao/gau-media-service/entity"
	"github.com/tnqbao/gau-media-service/infra"
	"github.com/tnqbao/gau-media-service/utils"
)

type TimedTextTrackResponse struct {
	ID            string               `json:"id"`
	VideoID       string               `json:"video_id"`
	ActiveStamp   *int64               `json:"active_stamp"`
	IsReadyToShow bool                 `json:"is_ready_to_show"`
	UploadState   entity.UploadState   `json:"upload_state"`
	Mode          entity.TimedTextMode `json:"mode"`
	Language      string               `json:"language"`
	URL           string               `json:"url,omitempty"`
}

// BuildTimedTextTrackResponse builds the representation of a single track.
// Track URLs are access controlled the same way video files are, so the
// delivery URL goes through the signer.
func BuildTimedTextTrackResponse(track *entity.TimedTextTrack, cdn *infra.CDNClient) (*TimedTextTrackResponse, error) {
	resp := &TimedTextTrackResponse{
		ID:            track.ID.String(),
		VideoID:       track.VideoID.String(),
		ActiveStamp:   activeStamp(track.UploadedOn),
		IsReadyToShow: track.IsReadyToShow(),
		UploadState:   track.UploadState,
		Mode:          track.Mode,
		Language:      track.Language,
	}

	if track.UploadedOn == nil {
		return resp, nil
	}
	stamp, err := utils.ToStamp(*track.UploadedOn)
	if err != nil {
		return nil, err
	}

	raw := fmt.Sprintf("%s/timedtext/%s_%s", cdn.BaseURL(track.VideoID), stamp, track.Language)
	if track.Mode != "" {
		raw = fmt.Sprintf("%s_%s", raw, track.Mode)
	}
	raw += ".vtt"

	signed, err := cdn.SignURL(raw)
	if err != nil {
		return nil, err
	}
	resp.URL = signed
	return resp, nil
}

package dto

import (
	"fmt"

	"github.com/tnqbao/gau-media-service/entity"
	"github.com/tnqbao/gau-media-service/infra"
	"github.com/tnqbao/gau-media-service/utils"
)

type ThumbnailResponse struct {
	ID            string             `json:"id"`
	VideoID       string             `json:"video_id"`
	ActiveStamp   *int64             `json:"active_stamp"`
	IsReadyToShow bool               `json:"is_ready_to_show"`
	UploadState   entity.UploadState `json:"upload_state"`
	URLs          map[int]string     `json:"urls"`
}

// BuildThumbnailResponse never fails: thumbnail URLs are public and unsigned,
// so there is no signer involved and a bad timestamp simply yields no urls.
func BuildThumbnailResponse(thumbnail *entity.Thumbnail, cdn *infra.CDNClient) *ThumbnailResponse {
	resp := &ThumbnailResponse{
		ID:            thumbnail.ID.String(),
		VideoID:       thumbnail.VideoID.String(),
		ActiveStamp:   activeStamp(thumbnail.UploadedOn),
		IsReadyToShow: thumbnail.IsReadyToShow(),
		UploadState:   thumbnail.UploadState,
	}

	if thumbnail.UploadedOn == nil {
		return resp
	}
	stamp, err := utils.ToStamp(*thumbnail.UploadedOn)
	if err != nil {
		return resp
	}

	base := cdn.BaseURL(thumbnail.VideoID)
	resp.URLs = make(map[int]string, len(cdn.Resolutions))
	for _, resolution := range cdn.Resolutions {
		resp.URLs[resolution] = fmt.Sprintf("%s/thumbnails/%s_%d.jpg", base, stamp, resolution)
	}
	return resp
}

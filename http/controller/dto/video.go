package dto

import (
	"fmt"
	"net/url"

	"github.com/tnqbao/gau-media-service/entity"
	"github.com/tnqbao/gau-media-service/infra"
	"github.com/tnqbao/gau-media-service/utils"
)

type VideoURLs struct {
	MP4        map[int]string    `json:"mp4"`
	Thumbnails map[int]string    `json:"thumbnails"`
	Manifests  map[string]string `json:"manifests"`
	Previews   string            `json:"previews"`
}

type VideoResponse struct {
	ID              string                   `json:"id"`
	PlaylistID      string                   `json:"playlist_id"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	ActiveStamp     *int64                   `json:"active_stamp"`
	IsReadyToShow   bool                     `json:"is_ready_to_show"`
	UploadState     entity.UploadState       `json:"upload_state"`
	ShowDownload    bool                     `json:"show_download"`
	URLs            *VideoURLs               `json:"urls"`
	Thumbnail       *ThumbnailResponse       `json:"thumbnail"`
	TimedTextTracks []TimedTextTrackResponse `json:"timed_text_tracks"`
}

// BuildVideoResponse assembles the delivery representation of a video. The
// urls block stays nil until an upload has completed, so players can rely on
// is_ready_to_show without probing the CDN.
func BuildVideoResponse(video *entity.Video, cdn *infra.CDNClient) (*VideoResponse, error) {
	resp := &VideoResponse{
		ID:            video.ID.String(),
		PlaylistID:    video.PlaylistID.String(),
		Title:         video.Title,
		Description:   video.Description,
		ActiveStamp:   activeStamp(video.UploadedOn),
		IsReadyToShow: video.IsReadyToShow(),
		UploadState:   video.UploadState,
		ShowDownload:  video.ShowDownload,
	}

	if video.Thumbnail != nil {
		resp.Thumbnail = BuildThumbnailResponse(video.Thumbnail, cdn)
	}
	resp.TimedTextTracks = make([]TimedTextTrackResponse, 0, len(video.TimedTextTracks))
	for i := range video.TimedTextTracks {
		track, err := BuildTimedTextTrackResponse(&video.TimedTextTracks[i], cdn)
		if err != nil {
			return nil, err
		}
		resp.TimedTextTracks = append(resp.TimedTextTracks, *track)
	}

	if video.UploadedOn == nil {
		return resp, nil
	}

	stamp, err := utils.ToStamp(*video.UploadedOn)
	if err != nil {
		return nil, err
	}

	base := cdn.BaseURL(video.ID)
	urls := &VideoURLs{
		MP4:        map[int]string{},
		Thumbnails: map[int]string{},
		Manifests: map[string]string{
			"dash": fmt.Sprintf("%s/cmaf/%s.mpd", base, stamp),
			"hls":  fmt.Sprintf("%s/cmaf/%s.m3u8", base, stamp),
		},
		Previews: fmt.Sprintf("%s/previews/%s_100.jpg", base, stamp),
	}

	playlistTitle := ""
	if video.Playlist != nil {
		playlistTitle = video.Playlist.Title
	}
	filename := fmt.Sprintf("%s_%s.mp4", utils.Slugify(playlistTitle), stamp)
	disposition := url.QueryEscape("attachment; filename=" + filename)

	for _, resolution := range video.ResolutionSet(cdn.Resolutions) {
		mp4 := fmt.Sprintf("%s/mp4/%s_%d.mp4?response-content-disposition=%s",
			base, stamp, resolution, disposition)
		signed, err := cdn.SignURL(mp4)
		if err != nil {
			return nil, err
		}
		urls.MP4[resolution] = signed

		if video.Thumbnail != nil && video.Thumbnail.UploadedOn != nil {
			thumbStamp, err := utils.ToStamp(*video.Thumbnail.UploadedOn)
			if err != nil {
				return nil, err
			}
			urls.Thumbnails[resolution] = fmt.Sprintf("%s/thumbnails/%s_%d.jpg", base, thumbStamp, resolution)
		} else {
			urls.Thumbnails[resolution] = fmt.Sprintf("%s/thumbnails/%s_%d.0000000.jpg", base, stamp, resolution)
		}
	}

	resp.URLs = urls
	return resp, nil
}

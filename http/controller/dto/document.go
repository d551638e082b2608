package dto

import (
	"fmt"
	"net/url"

	"github.com/tnqbao/gau-media-service/entity"
	"github.com/tnqbao/gau-media-service/infra"
	"github.com/tnqbao/gau-media-service/utils"
)

type DocumentResponse struct {
	ID            string             `json:"id"`
	PlaylistID    string             `json:"playlist_id"`
	Title         string             `json:"title"`
	Extension     string             `json:"extension"`
	Filename      string             `json:"filename"`
	ActiveStamp   *int64             `json:"active_stamp"`
	IsReadyToShow bool               `json:"is_ready_to_show"`
	UploadState   entity.UploadState `json:"upload_state"`
	ShowDownload  bool               `json:"show_download"`
	URL           string             `json:"url,omitempty"`
}

// DocumentFilename is the download name suggested to browsers, built from the
// playlist and document titles so the file lands with a readable name.
func DocumentFilename(document *entity.Document) string {
	playlistTitle := ""
	if document.Playlist != nil {
		playlistTitle = document.Playlist.Title
	}
	return fmt.Sprintf("%s_%s%s",
		utils.Slugify(playlistTitle),
		utils.Slugify(document.Title),
		document.ExtensionWithDot())
}

func BuildDocumentResponse(document *entity.Document, cdn *infra.CDNClient) (*DocumentResponse, error) {
	resp := &DocumentResponse{
		ID:            document.ID.String(),
		PlaylistID:    document.PlaylistID.String(),
		Title:         document.Title,
		Extension:     document.Extension,
		Filename:      DocumentFilename(document),
		ActiveStamp:   activeStamp(document.UploadedOn),
		IsReadyToShow: document.IsReadyToShow(),
		UploadState:   document.UploadState,
		ShowDownload:  document.ShowDownload,
	}

	if document.UploadedOn == nil {
		return resp, nil
	}
	stamp, err := utils.ToStamp(*document.UploadedOn)
	if err != nil {
		return nil, err
	}

	disposition := url.QueryEscape("attachment; filename=" + resp.Filename)
	raw := fmt.Sprintf("%s/document/%s%s?response-content-disposition=%s",
		cdn.BaseURL(document.ID), stamp, document.ExtensionWithDot(), disposition)

	signed, err := cdn.SignURL(raw)
	if err != nil {
		return nil, err
	}
	resp.URL = signed
	return resp, nil
}

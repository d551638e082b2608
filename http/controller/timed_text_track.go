package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-media-service/entity"
	"github.com/tnqbao/gau-media-service/http/controller/dto"
	"github.com/tnqbao/gau-media-service/repository"
	"github.com/tnqbao/gau-media-service/utils"
)

func (ctrl *Controller) GetTimedTextTrack(c *gin.Context) {
	trackID, ok := parseAssetID(c, "trackId")
	if !ok {
		return
	}

	track, err := ctrl.Repository.TimedTextTrackRepo.FindByID(trackID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			utils.JSON404(c, "timed text track not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to load timed text track %s", trackID)
		utils.JSON500(c, "failed to load timed text track")
		return
	}

	if !ctrl.authorizeResource(c, track.VideoID) {
		return
	}

	resp, err := dto.BuildTimedTextTrackResponse(track, ctrl.Infra.CDN)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to build track representation %s", trackID)
		utils.JSON500(c, "failed to build track representation")
		return
	}
	utils.JSON200(c, resp)
}

func (ctrl *Controller) InitiateTimedTextTrackUpload(c *gin.Context) {
	trackID, ok := parseAssetID(c, "trackId")
	if !ok {
		return
	}

	track, err := ctrl.Repository.TimedTextTrackRepo.FindByID(trackID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			utils.JSON404(c, "timed text track not found")
			return
		}
		utils.JSON500(c, "failed to load timed text track")
		return
	}
	if !ctrl.authorizeResource(c, track.VideoID) {
		return
	}

	mode := track.Mode
	if mode == "" {
		mode = entity.TimedTextModeSubtitle
	}
	key := utils.StorageKey{
		OwnerID:  track.VideoID,
		Model:    utils.KeyModelTimedTextTrack,
		ObjectID: track.ID,
		Language: track.Language,
		Mode:     mode,
	}
	ctrl.initiateUpload(c, key, func() error {
		return ctrl.Repository.TimedTextTrackRepo.UpdateUploadState(track.ID, entity.UploadStatePending, nil)
	})
}

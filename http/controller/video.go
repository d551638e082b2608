package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-media-service/entity"
	"github.com/tnqbao/gau-media-service/http/controller/dto"
	"github.com/tnqbao/gau-media-service/repository"
	"github.com/tnqbao/gau-media-service/utils"
)

// GetVideo returns the delivery representation of a video, including its
// thumbnail and timed text tracks.
func (ctrl *Controller) GetVideo(c *gin.Context) {
	videoID, ok := parseAssetID(c, "videoId")
	if !ok {
		return
	}
	if !ctrl.authorizeResource(c, videoID) {
		return
	}

	cacheKey := representationCacheKey(utils.KeyModelVideo, videoID)
	if ctrl.serveCached(c, cacheKey) {
		return
	}

	video, err := ctrl.Repository.VideoRepo.FindByID(videoID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			utils.JSON404(c, "video not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to load video %s", videoID)
		utils.JSON500(c, "failed to load video")
		return
	}

	resp, err := dto.BuildVideoResponse(video, ctrl.Infra.CDN)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to build video representation %s", videoID)
		utils.JSON500(c, "failed to build video representation")
		return
	}

	ctrl.cacheRepresentation(c.Request.Context(), cacheKey, resp)
	utils.JSON200(c, resp)
}

// InitiateVideoUpload resets the video to pending and returns a presigned PUT
// URL on the source bucket under a freshly stamped key.
func (ctrl *Controller) InitiateVideoUpload(c *gin.Context) {
	videoID, ok := parseAssetID(c, "videoId")
	if !ok {
		return
	}
	if !ctrl.authorizeResource(c, videoID) {
		return
	}

	if _, err := ctrl.Repository.VideoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			utils.JSON404(c, "video not found")
			return
		}
		utils.JSON500(c, "failed to load video")
		return
	}

	key := utils.StorageKey{
		OwnerID:  videoID,
		Model:    utils.KeyModelVideo,
		ObjectID: videoID,
	}
	ctrl.initiateUpload(c, key, func() error {
		return ctrl.Repository.VideoRepo.UpdateUploadState(videoID, entity.UploadStatePending, nil)
	})
}

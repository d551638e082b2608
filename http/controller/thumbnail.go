package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-media-service/entity"
	"github.com/tnqbao/gau-media-service/http/controller/dto"
	"github.com/tnqbao/gau-media-service/repository"
	"github.com/tnqbao/gau-media-service/utils"
)

func (ctrl *Controller) GetThumbnail(c *gin.Context) {
	thumbnailID, ok := parseAssetID(c, "thumbnailId")
	if !ok {
		return
	}

	thumbnail, err := ctrl.Repository.ThumbnailRepo.FindByID(thumbnailID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			utils.JSON404(c, "thumbnail not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to load thumbnail %s", thumbnailID)
		utils.JSON500(c, "failed to load thumbnail")
		return
	}

	// The LTI grant is scoped to the parent video.
	if !ctrl.authorizeResource(c, thumbnail.VideoID) {
		return
	}

	utils.JSON200(c, dto.BuildThumbnailResponse(thumbnail, ctrl.Infra.CDN))
}

func (ctrl *Controller) InitiateThumbnailUpload(c *gin.Context) {
	thumbnailID, ok := parseAssetID(c, "thumbnailId")
	if !ok {
		return
	}

	thumbnail, err := ctrl.Repository.ThumbnailRepo.FindByID(thumbnailID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			utils.JSON404(c, "thumbnail not found")
			return
		}
		utils.JSON500(c, "failed to load thumbnail")
		return
	}
	if !ctrl.authorizeResource(c, thumbnail.VideoID) {
		return
	}

	key := utils.StorageKey{
		OwnerID:  thumbnail.VideoID,
		Model:    utils.KeyModelThumbnail,
		ObjectID: thumbnail.ID,
	}
	ctrl.initiateUpload(c, key, func() error {
		return ctrl.Repository.ThumbnailRepo.UpdateUploadState(thumbnail.ID, entity.UploadStatePending, nil)
	})
}

package controller

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-media-service/http/controller/dto"
	"github.com/tnqbao/gau-media-service/infra/produce"
	"github.com/tnqbao/gau-media-service/repository"
	"github.com/tnqbao/gau-media-service/utils"
)

// SendVideoXAPIStatement validates a learning-analytics statement emitted by
// the player and queues it for the LRS forwarder.
func (ctrl *Controller) SendVideoXAPIStatement(c *gin.Context) {
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

	raw, err := c.GetRawData()
	if err != nil {
		utils.JSON400(c, "failed to read statement")
		return
	}

	statement, err := dto.ValidateStatement(raw)
	if err != nil {
		utils.JSON400(c, err.Error())
		return
	}

	body, err := json.Marshal(statement)
	if err != nil {
		utils.JSON500(c, "failed to serialize statement")
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.Infra.Produce.MediaService.PublishXAPIStatement(ctx, produce.XAPIStatementMessage{
		VideoID:   videoID.String(),
		Statement: body,
	}); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "Failed to queue xAPI statement for video %s", videoID)
		utils.JSON500(c, "failed to queue statement")
		return
	}

	utils.JSON201(c, gin.H{"id": statement.ID})
}

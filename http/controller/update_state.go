package controller

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-media-service/entity"
	"github.com/tnqbao/gau-media-service/http/controller/dto"
	"github.com/tnqbao/gau-media-service/infra/produce"
	"github.com/tnqbao/gau-media-service/repository"
	"github.com/tnqbao/gau-media-service/utils"
)

// replayGuardTTL bounds how long a processed notification blocks an identical
// one. Storage stacks redeliver within seconds, not hours.
const replayGuardTTL = 5 * time.Minute

// UpdateState is the storage notification webhook. It sits outside the JWT
// middleware: the HMAC signature over the payload is the trust boundary.
func (ctrl *Controller) UpdateState(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "key, state and signature are required; state must be processing, ready or error")
		return
	}

	key, err := utils.ParseKey(req.Key)
	if err != nil {
		utils.JSON400(c, "invalid storage key")
		return
	}

	resolutions, err := req.Resolutions()
	if err != nil {
		utils.JSON400(c, "invalid resolutions parameter")
		return
	}
	extension, err := req.Extension()
	if err != nil {
		utils.JSON400(c, "invalid extension parameter")
		return
	}

	// The signature covers the extra parameters too: they end up in persisted
	// asset fields, so an unsigned copy must not be able to alter them.
	if err := utils.VerifyNotificationSignature(req.Key, req.State, req.ExtraParameters, req.Signature, ctrl.Config.EnvConfig.UpdateStateSecrets); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "Rejected notification with invalid signature for key %s", req.Key)
		utils.JSON403(c, "invalid signature")
		return
	}

	// A redelivered notification is acknowledged without reapplying it, so a
	// later legitimate transition cannot be overwritten by a replay.
	digest := sha256.Sum256([]byte(req.Key + "\n" + req.State + "\n" + req.Signature))
	guardKey := "media:update_state:" + hex.EncodeToString(digest[:])
	fresh, err := ctrl.Infra.Redis.SetNX(ctx, guardKey, true, replayGuardTTL)
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "Replay guard unavailable, applying notification anyway: %v", err)
	} else if !fresh {
		ctrl.Infra.Logger.InfoWithContextf(ctx, "Ignored replayed notification for key %s state %s", req.Key, req.State)
		utils.JSON200(c, gin.H{"success": true})
		return
	}

	state := entity.UploadState(req.State)
	err = ctrl.Repository.ApplyUploadState(key, state, repository.UploadStateExtra{
		Resolutions: resolutions,
		Extension:   extension,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			utils.JSON404(c, "asset not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "Failed to apply state %s to key %s", req.State, req.Key)
		utils.JSON500(c, "failed to apply state")
		return
	}

	ctrl.invalidateRepresentation(ctx, key.Model, key.ObjectID)
	if key.OwnerID != key.ObjectID {
		ctrl.invalidateRepresentation(ctx, utils.KeyModelVideo, key.OwnerID)
	}

	if err := ctrl.Infra.Produce.MediaService.PublishStateChanged(ctx, produce.StateChangedMessage{
		Model:    key.Model,
		ObjectID: key.ObjectID.String(),
		State:    req.State,
		Stamp:    key.Stamp,
	}); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "Failed to publish state change for %s %s: %v", key.Model, key.ObjectID, err)
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "Applied state %s to %s %s", req.State, key.Model, key.ObjectID)
	utils.JSON200(c, gin.H{"success": true})
}

package controller

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-media-service/http/controller/dto"
	"github.com/tnqbao/gau-media-service/utils"
)

// initiateUpload runs the shared part of every initiate-upload endpoint:
// derive a fresh storage key stamped now, drop stale raw files below the
// resource prefix, reset the resource to pending and hand out a presigned PUT
// URL on the source bucket. The caller fills in everything on the key except
// the stamp and, for documents, the extension.
func (ctrl *Controller) initiateUpload(c *gin.Context, key utils.StorageKey, reset func() error) {
	var req dto.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "filename is required")
		return
	}

	stamp, err := utils.ToStamp(time.Now())
	if err != nil {
		utils.JSON500(c, "failed to derive upload timestamp")
		return
	}
	key.Stamp = stamp
	if key.Model == utils.KeyModelDocument {
		key.Extension = fileExtension(req.Filename)
	}

	raw := key.String()
	if _, err := utils.ParseKey(raw); err != nil {
		utils.JSON400(c, "filename contains characters that cannot be stored")
		return
	}

	ctx := c.Request.Context()

	// Stale raw files from an earlier, possibly failed attempt would confuse
	// the transcoding stack, so the prefix is cleared before a new upload.
	prefix := fmt.Sprintf("%s/%s/%s/", key.OwnerID, key.Model, key.ObjectID)
	if err := ctrl.Infra.Minio.DeleteObjectsWithPrefix(ctx, prefix); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "Failed to clear stale source objects under %s: %v", prefix, err)
	}

	if err := reset(); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "Failed to reset %s %s for upload", key.Model, key.ObjectID)
		utils.JSON500(c, "failed to reset resource for upload")
		return
	}

	ctrl.invalidateRepresentation(ctx, key.Model, key.ObjectID)
	if key.OwnerID != key.ObjectID {
		ctrl.invalidateRepresentation(ctx, utils.KeyModelVideo, key.OwnerID)
	}

	uploadURL, err := ctrl.Infra.Minio.PresignUpload(ctx, raw)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "Failed to presign upload for key %s", raw)
		utils.JSON500(c, "failed to create upload URL")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "Initiated upload for %s %s with key %s", key.Model, key.ObjectID, raw)

	utils.JSON200(c, dto.InitiateUploadResponse{
		Key:       raw,
		UploadURL: uploadURL,
		ExpiresAt: time.Now().Add(ctrl.Infra.Minio.UploadExpire),
	})
}

func fileExtension(filename string) string {
	return strings.TrimPrefix(filepath.Ext(filename), ".")
}

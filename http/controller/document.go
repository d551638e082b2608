package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-media-service/entity"
	"github.com/tnqbao/gau-media-service/http/controller/dto"
	"github.com/tnqbao/gau-media-service/repository"
	"github.com/tnqbao/gau-media-service/utils"
)

func (ctrl *Controller) GetDocument(c *gin.Context) {
	documentID, ok := parseAssetID(c, "documentId")
	if !ok {
		return
	}
	if !ctrl.authorizeResource(c, documentID) {
		return
	}

	cacheKey := representationCacheKey(utils.KeyModelDocument, documentID)
	if ctrl.serveCached(c, cacheKey) {
		return
	}

	document, err := ctrl.Repository.DocumentRepo.FindByID(documentID)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			utils.JSON404(c, "document not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to load document %s", documentID)
		utils.JSON500(c, "failed to load document")
		return
	}

	resp, err := dto.BuildDocumentResponse(document, ctrl.Infra.CDN)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to build document representation %s", documentID)
		utils.JSON500(c, "failed to build document representation")
		return
	}

	ctrl.cacheRepresentation(c.Request.Context(), cacheKey, resp)
	utils.JSON200(c, resp)
}

func (ctrl *Controller) InitiateDocumentUpload(c *gin.Context) {
	documentID, ok := parseAssetID(c, "documentId")
	if !ok {
		return
	}
	if !ctrl.authorizeResource(c, documentID) {
		return
	}

	if _, err := ctrl.Repository.DocumentRepo.FindByID(documentID); err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			utils.JSON404(c, "document not found")
			return
		}
		utils.JSON500(c, "failed to load document")
		return
	}

	key := utils.StorageKey{
		OwnerID:  documentID,
		Model:    utils.KeyModelDocument,
		ObjectID: documentID,
	}
	ctrl.initiateUpload(c, key, func() error {
		return ctrl.Repository.DocumentRepo.UpdateUploadState(documentID, entity.UploadStatePending, nil)
	})
}

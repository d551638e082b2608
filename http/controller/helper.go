package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tnqbao/gau-media-service/utils"
)

// representationTTL bounds staleness of cached asset representations. State
// transitions invalidate eagerly, the TTL is only a backstop.
const representationTTL = 5 * time.Minute

func parseAssetID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.JSON400(c, "invalid asset id")
		return uuid.Nil, false
	}
	return id, true
}

// authorizeResource checks that the resource grant carried by the token
// matches one of the given ids. For video-owned subresources the grant is
// scoped to the parent video.
func (ctrl *Controller) authorizeResource(c *gin.Context, ids ...uuid.UUID) bool {
	resourceID, err := utils.GetResourceIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "missing resource grant")
		return false
	}
	for _, id := range ids {
		if resourceID == id {
			return true
		}
	}
	utils.JSON403(c, "token does not grant access to this resource")
	return false
}

func representationCacheKey(model string, id uuid.UUID) string {
	return fmt.Sprintf("media:representation:%s:%s", model, id)
}

// cacheable reports whether representations may be served from Redis. Signed
// URLs embed an expiry, caching them would hand out stale signatures.
func (ctrl *Controller) cacheable() bool {
	return !ctrl.Infra.CDN.SignActive
}

func (ctrl *Controller) serveCached(c *gin.Context, cacheKey string) bool {
	if !ctrl.cacheable() {
		return false
	}
	var cached json.RawMessage
	if err := ctrl.Infra.Redis.Get(c.Request.Context(), cacheKey, &cached); err != nil {
		return false
	}
	c.Data(200, "application/json; charset=utf-8", cached)
	return true
}

func (ctrl *Controller) cacheRepresentation(ctx context.Context, cacheKey string, representation interface{}) {
	if !ctrl.cacheable() {
		return
	}
	body, err := json.Marshal(representation)
	if err != nil {
		return
	}
	if err := ctrl.Infra.Redis.Set(ctx, cacheKey, json.RawMessage(body), representationTTL); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "Failed to cache representation %s: %v", cacheKey, err)
	}
}

func (ctrl *Controller) invalidateRepresentation(ctx context.Context, model string, id uuid.UUID) {
	if err := ctrl.Infra.Redis.Delete(ctx, representationCacheKey(model, id)); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "Failed to invalidate cached representation %s %s: %v", model, id, err)
	}
}

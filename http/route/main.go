package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-media-service/http/controller"
	middlewares "github.com/tnqbao/gau-media-service/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}
	r.Use(middles.CORSMiddleware)

	apiRoutes := r.Group("/api/v1/media")
	{
		// The webhook sits outside the JWT middleware: the transcoding stack
		// authenticates with an HMAC signature, not a token.
		apiRoutes.POST("/update-state", ctrl.UpdateState)

		resourceRoutes := apiRoutes.Group("")
		{
			resourceRoutes.Use(middles.AuthMiddleware)

			videoRoutes := resourceRoutes.Group("/videos")
			{
				videoRoutes.GET("/:videoId", ctrl.GetVideo)
				videoRoutes.POST("/:videoId/initiate-upload", ctrl.InitiateVideoUpload)
				videoRoutes.POST("/:videoId/xapi", ctrl.SendVideoXAPIStatement)
			}

			thumbnailRoutes := resourceRoutes.Group("/thumbnails")
			{
				thumbnailRoutes.GET("/:thumbnailId", ctrl.GetThumbnail)
				thumbnailRoutes.POST("/:thumbnailId/initiate-upload", ctrl.InitiateThumbnailUpload)
			}

			trackRoutes := resourceRoutes.Group("/timedtexttracks")
			{
				trackRoutes.GET("/:trackId", ctrl.GetTimedTextTrack)
				trackRoutes.POST("/:trackId/initiate-upload", ctrl.InitiateTimedTextTrackUpload)
			}

			documentRoutes := resourceRoutes.Group("/documents")
			{
				documentRoutes.GET("/:documentId", ctrl.GetDocument)
				documentRoutes.POST("/:documentId/initiate-upload", ctrl.InitiateDocumentUpload)
			}
		}
	}
	return r
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avolkovs/vidhub/internal/logging"
	"github.com/avolkovs/vidhub/internal/server/services"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(
	sessions *services.SessionService,
	accounts *services.AccountService,
	videos *services.VideoService,
	social *services.SocialService,
	logger logging.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	authHandler := NewAuthHandler(sessions, logger)
	accountHandler := NewAccountHandler(accounts, logger)
	videoHandler := NewVideoHandler(videos, logger)
	socialHandler := NewSocialHandler(social, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Public routes.
	api.POST("/auth/register", accountHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.GET("/videos", videoHandler.ListPublished)
	api.GET("/videos/:id", OptionalAuth(sessions), videoHandler.Watch)
	api.GET("/videos/:id/comments", socialHandler.ListComments)
	api.GET("/accounts/:id", accountHandler.Get)
	api.GET("/accounts/:id/tweets", socialHandler.ListTweets)
	api.GET("/playlists/:id", socialHandler.GetPlaylist)

	// Routes that need a valid access token.
	protected := api.Group("/")
	protected.Use(RequireAuth(sessions))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.POST("/auth/change-password", authHandler.ChangePassword)
		protected.GET("/auth/me", authHandler.Me)

		protected.POST("/uploads/media", accountHandler.RequestMediaUpload)
		protected.PATCH("/accounts", accountHandler.UpdateDetails)
		protected.PATCH("/accounts/avatar", accountHandler.UpdateAvatar)
		protected.PATCH("/accounts/cover-image", accountHandler.UpdateCoverImage)

		protected.POST("/uploads/videos", videoHandler.RequestUpload)
		protected.POST("/videos", videoHandler.Publish)
		protected.GET("/me/videos", videoHandler.ListMine)
		protected.PATCH("/videos/:id/publish", videoHandler.SetPublished)
		protected.DELETE("/videos/:id", videoHandler.Delete)
		protected.POST("/videos/:id/comments", socialHandler.CreateComment)

		protected.POST("/tweets", socialHandler.CreateTweet)
		protected.DELETE("/tweets/:id", socialHandler.DeleteTweet)
		protected.DELETE("/comments/:id", socialHandler.DeleteComment)
		protected.POST("/likes/toggle", socialHandler.ToggleLike)

		protected.POST("/playlists", socialHandler.CreatePlaylist)
		protected.POST("/playlists/:id/videos/:videoId", socialHandler.AddPlaylistVideo)
		protected.DELETE("/playlists/:id/videos/:videoId", socialHandler.RemovePlaylistVideo)
		protected.DELETE("/playlists/:id", socialHandler.DeletePlaylist)
	}

	return router
}

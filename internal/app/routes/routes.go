package routes

import (
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/controllers"
	"github.com/HarinChan/MirrorMirrorEngine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Controllers groups the HTTP handlers mounted by SetupRouter
type Controllers struct {
	Auth         *controllers.AuthController
	Profile      *controllers.ProfileController
	Friend       *controllers.FriendController
	Post         *controllers.PostController
	Notification *controllers.NotificationController
	Webex        *controllers.WebexController
	Meeting      *controllers.MeetingController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.POST("/logout", c.Auth.Logout)
	}

	// The feed is public; a valid token only personalises isLiked
	api.GET("/posts", authMiddleware.OptionalJWTAuth(), c.Post.ListPosts)

	// --- Authenticated Routes Group ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/me", c.Auth.Me)

	profiles := authenticated.Group("/profiles")
	{
		profiles.POST("", c.Profile.CreateProfile)
		profiles.GET("", c.Profile.ListProfiles)
		profiles.GET("/:id", c.Profile.GetProfile)
		profiles.PUT("/:id", c.Profile.UpdateProfile)
		profiles.DELETE("/:id", c.Profile.DeleteProfile)
	}

	friends := authenticated.Group("/friends")
	{
		friends.GET("", c.Friend.ListFriends)
		friends.POST("/request", c.Friend.SubmitRequest)
		friends.POST("/requests/:id/accept", c.Friend.AcceptRequest)
		friends.POST("/requests/:id/reject", c.Friend.RejectRequest)
		friends.DELETE("/:profileId", c.Friend.Unfriend)
	}

	posts := authenticated.Group("/posts")
	{
		posts.POST("", c.Post.CreatePost)
		posts.POST("/:id/like", c.Post.LikePost)
		posts.POST("/:id/unlike", c.Post.UnlikePost)
		posts.DELETE("/:id", c.Post.DeletePost)
	}

	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", c.Notification.List)
		notifications.POST("/:id/read", c.Notification.MarkRead)
		notifications.DELETE("/:id", c.Notification.Delete)
	}

	webex := authenticated.Group("/webex")
	{
		webex.GET("/auth-url", c.Webex.AuthURL)
		webex.POST("/connect", c.Webex.Connect)
		webex.GET("/status", c.Webex.Status)
		webex.POST("/disconnect", c.Webex.Disconnect)

		webex.POST("/meeting", c.Meeting.CreateInvitation)
		webex.GET("/meeting/:id", c.Meeting.GetMeeting)
		webex.PUT("/meeting/:id", c.Meeting.UpdateMeeting)
		webex.DELETE("/meeting/:id", c.Meeting.DeleteMeeting)

		webex.GET("/invitations", c.Meeting.ListReceivedInvitations)
		webex.GET("/invitations/sent", c.Meeting.ListSentInvitations)
		webex.POST("/invitations/:id/accept", c.Meeting.AcceptInvitation)
		webex.POST("/invitations/:id/decline", c.Meeting.DeclineInvitation)
		webex.POST("/invitations/:id/cancel", c.Meeting.CancelInvitation)
	}

	authenticated.GET("/meetings", c.Meeting.ListUpcoming)
}

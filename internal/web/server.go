// Package web exposes the application services over a JSON API. The
// surface mirrors the terminal front-end: one process owns the local
// store and serves a single session.
package web

import (
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/ideaflow/internal/audio"
	"github.com/dmitrijs2005/ideaflow/internal/cms"
	"github.com/dmitrijs2005/ideaflow/internal/deepsearch"
	"github.com/dmitrijs2005/ideaflow/internal/ideas"
	"github.com/dmitrijs2005/ideaflow/internal/launchhub"
	"github.com/dmitrijs2005/ideaflow/internal/logging"
	"github.com/dmitrijs2005/ideaflow/internal/notify"
	"github.com/dmitrijs2005/ideaflow/internal/session"
)

// Services bundles the application layer the server fronts.
type Services struct {
	Session  *session.Manager
	Ideas    *ideas.Store
	Search   *deepsearch.Workflow
	Hub      *launchhub.Hub
	CMS      *cms.Store
	Audio    *audio.Adapter
	Notifier *notify.Notifier
	Log      logging.Logger
}

// Server is the IdeaFlow web server.
type Server struct {
	svc    Services
	router *gin.Engine
}

// NewServer creates a new web server and registers all routes.
func NewServer(svc Services) *Server {
	router := gin.Default()

	s := &Server{
		svc:    svc,
		router: router,
	}

	api := router.Group("/api")
	{
		api.POST("/register", s.handleRegister)
		api.POST("/login", s.handleLogin)
		api.POST("/logout", s.handleLogout)
		api.GET("/session", s.handleSession)
		api.PUT("/profile", s.handleProfile)
		api.PUT("/subscription", s.handleSubscription)
		api.POST("/tour", s.handleTour)

		api.GET("/ideas", s.handleListIdeas)
		api.POST("/ideas", s.handleCreateIdea)
		api.PUT("/ideas/:id", s.handleUpdateIdea)
		api.DELETE("/ideas/:id", s.handleDeleteIdea)
		api.POST("/ideas/:id/star", s.handleToggleStar)
		api.GET("/stats", s.handleStats)

		api.POST("/record/start", s.handleRecordStart)
		api.GET("/record", s.handleRecordStatus)
		api.POST("/record/stop", s.handleRecordStop)

		api.POST("/deepsearch", s.handleDeepSearchStart)
		api.GET("/deepsearch", s.handleDeepSearchStatus)
		api.DELETE("/deepsearch", s.handleDeepSearchReset)

		api.GET("/launch", s.handleLaunchStatus)
		api.POST("/launch/assets/:platform", s.handleUploadAsset)
		api.DELETE("/launch/assets/:platform", s.handleRemoveAsset)
		api.POST("/launch/deploy", s.handleDeploy)

		api.GET("/announcements", s.handleListAnnouncements)
		api.POST("/announcements", s.handleCreateAnnouncement)
		api.PUT("/announcements/:id", s.handleUpdateAnnouncement)

		api.GET("/users", s.handleListUsers)
		api.DELETE("/users/:id", s.handleDeleteUser)

		api.GET("/notification", s.handleNotification)
	}

	return s
}

// Run starts the web server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

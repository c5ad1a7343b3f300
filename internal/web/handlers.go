package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/ideaflow/internal/audio"
	"github.com/dmitrijs2005/ideaflow/internal/common"
	"github.com/dmitrijs2005/ideaflow/internal/ideas"
	"github.com/dmitrijs2005/ideaflow/internal/launchhub"
	"github.com/dmitrijs2005/ideaflow/internal/models"
	"github.com/dmitrijs2005/ideaflow/internal/session"
)

const maxContentSize = 10 << 10 // 10KB

func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"success": false, "error": msg})
}

// publicUser strips credential material before a user record leaves the
// process.
func publicUser(u models.User) models.User {
	u.PasswordHash = ""
	return u
}

// requireAdmin resolves the session user and rejects non-admins.
func (s *Server) requireAdmin(c *gin.Context) bool {
	user, ok := s.svc.Session.Current()
	if !ok || !user.IsAdmin {
		fail(c, http.StatusForbidden, "admin rights required")
		return false
	}
	return true
}

// Session handlers

func (s *Server) handleRegister(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.svc.Session.Register(c.Request.Context(), req.Email, req.Username, []byte(req.Password))
	if err != nil {
		if errors.Is(err, common.ErrUserExists) {
			fail(c, http.StatusConflict, "account already exists")
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": publicUser(user)})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.svc.Session.Authenticate(c.Request.Context(), req.Email, []byte(req.Password))
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := s.svc.Ideas.Load(c.Request.Context()); err != nil {
		s.svc.Log.Warn(c.Request.Context(), "reloading captures after login", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": publicUser(user)})
}

func (s *Server) handleLogout(c *gin.Context) {
	if err := s.svc.Session.SignOut(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	s.svc.Search.Reset()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleSession(c *gin.Context) {
	user, ok := s.svc.Session.Current()
	if !ok {
		fail(c, http.StatusUnauthorized, "not signed in")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": publicUser(user)})
}

func (s *Server) handleSubscription(c *gin.Context) {
	var req struct {
		Plan string `json:"plan" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	plan := models.SubscriptionPlan(req.Plan)
	if !plan.Valid() {
		fail(c, http.StatusBadRequest, "unknown plan")
		return
	}
	if err := s.svc.Session.UpdateSubscription(c.Request.Context(), plan); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	user, _ := s.svc.Session.Current()
	c.JSON(http.StatusOK, gin.H{"success": true, "user": publicUser(user)})
}

func (s *Server) handleProfile(c *gin.Context) {
	var req struct {
		Username             *string `json:"username"`
		NotificationsEnabled *bool   `json:"notificationsEnabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := s.svc.Session.Current(); !ok {
		fail(c, http.StatusUnauthorized, "not signed in")
		return
	}

	update := session.ProfileUpdate{
		Username:             req.Username,
		NotificationsEnabled: req.NotificationsEnabled,
	}
	if err := s.svc.Session.UpdateProfile(c.Request.Context(), update); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	user, _ := s.svc.Session.Current()
	c.JSON(http.StatusOK, gin.H{"success": true, "user": publicUser(user)})
}

func (s *Server) handleTour(c *gin.Context) {
	if err := s.svc.Session.CompleteTour(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Idea handlers

func (s *Server) handleListIdeas(c *gin.Context) {
	query := c.Query("q")
	category := models.CategoryAll
	if v := c.Query("category"); v != "" {
		category = models.Category(v)
	}

	list := s.svc.Ideas.Filtered(query, category)
	c.JSON(http.StatusOK, gin.H{"success": true, "ideas": list, "count": len(list)})
}

func (s *Server) handleCreateIdea(c *gin.Context) {
	var req struct {
		Content  string   `json:"content"`
		Source   string   `json:"source"`
		Category string   `json:"category"`
		Tags     []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Content) > maxContentSize {
		fail(c, http.StatusBadRequest, "content exceeds maximum size of 10KB")
		return
	}

	source := models.SourceTyped
	if req.Source != "" {
		source = models.Source(req.Source)
	}
	category := models.CategoryNote
	if req.Category != "" {
		category = models.Category(req.Category)
	}

	idea, err := s.svc.Ideas.Create(c.Request.Context(), req.Content, source, category, req.Tags)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotSignedIn):
			fail(c, http.StatusUnauthorized, "not signed in")
		case errors.Is(err, common.ErrEmptyContent):
			fail(c, http.StatusBadRequest, "content is empty")
		default:
			fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.svc.Notifier.Show("Sync Successful!")
	c.JSON(http.StatusCreated, gin.H{"success": true, "idea": idea})
}

func (s *Server) handleUpdateIdea(c *gin.Context) {
	var req struct {
		Content  *string  `json:"content"`
		Category *string  `json:"category"`
		Tags     []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	update := ideas.IdeaUpdate{Content: req.Content, Tags: req.Tags}
	if req.Category != nil {
		category := models.Category(*req.Category)
		update.Category = &category
	}
	if err := s.svc.Ideas.Update(c.Request.Context(), c.Param("id"), update); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleDeleteIdea(c *gin.Context) {
	if err := s.svc.Ideas.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleToggleStar(c *gin.Context) {
	if err := s.svc.Ideas.ToggleStar(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": s.svc.Ideas.Stats()})
}

// Recording handlers. The adapter only accumulates a transcript; committing
// it as a capture goes through POST /api/ideas with a "Voice" source.

func (s *Server) handleRecordStart(c *gin.Context) {
	if _, ok := s.svc.Session.Current(); !ok {
		fail(c, http.StatusUnauthorized, "not signed in")
		return
	}
	if err := s.svc.Audio.Start(c.Request.Context()); err != nil {
		if errors.Is(err, audio.ErrAlreadyRecording) {
			fail(c, http.StatusConflict, "recording already active")
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleRecordStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"recording":  s.svc.Audio.Recording(),
		"level":      s.svc.Audio.Level(),
		"transcript": s.svc.Audio.Transcript(),
	})
}

func (s *Server) handleRecordStop(c *gin.Context) {
	if err := s.svc.Audio.Stop(); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "transcript": s.svc.Audio.Transcript()})
}

// Deep-search handlers

func (s *Server) handleDeepSearchStart(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	err := s.svc.Search.Initiate(c.Request.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrPlanRequired):
			fail(c, http.StatusPaymentRequired, "deep search requires an active paid plan")
		case errors.Is(err, common.ErrNotSignedIn):
			fail(c, http.StatusUnauthorized, "not signed in")
		default:
			fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true})
}

func (s *Server) handleDeepSearchStatus(c *gin.Context) {
	state, digest := s.svc.Search.Snapshot()
	resp := gin.H{"success": true, "state": state}
	if digest != nil {
		resp["digest"] = digest
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeepSearchReset(c *gin.Context) {
	s.svc.Search.Reset()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Launch hub handlers

func parsePlatform(name string) (launchhub.Platform, bool) {
	switch name {
	case "google":
		return launchhub.PlatformGoogle, true
	case "apple":
		return launchhub.PlatformApple, true
	}
	return "", false
}

func (s *Server) handleLaunchStatus(c *gin.Context) {
	resp := gin.H{
		"success":   true,
		"readiness": s.svc.Hub.Readiness(),
		"deploying": s.svc.Hub.Deploying(),
	}
	if user, ok := s.svc.Session.Current(); ok {
		resp["launchStatus"] = user.MobileLaunchStatus
	}
	assets := gin.H{}
	for name, p := range map[string]launchhub.Platform{"google": launchhub.PlatformGoogle, "apple": launchhub.PlatformApple} {
		_, uploaded := s.svc.Hub.Asset(p)
		assets[name] = uploaded
	}
	resp["assets"] = assets
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleUploadAsset(c *gin.Context) {
	platform, ok := parsePlatform(c.Param("platform"))
	if !ok {
		fail(c, http.StatusBadRequest, "unknown platform")
		return
	}

	image, err := c.GetRawData()
	if err != nil || len(image) == 0 {
		fail(c, http.StatusBadRequest, "image body required")
		return
	}

	if err := s.svc.Hub.UploadAsset(c.Request.Context(), platform, image); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "readiness": s.svc.Hub.Readiness()})
}

func (s *Server) handleRemoveAsset(c *gin.Context) {
	platform, ok := parsePlatform(c.Param("platform"))
	if !ok {
		fail(c, http.StatusBadRequest, "unknown platform")
		return
	}
	if err := s.svc.Hub.RemoveAsset(c.Request.Context(), platform); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "readiness": s.svc.Hub.Readiness()})
}

func (s *Server) handleDeploy(c *gin.Context) {
	err := s.svc.Hub.Deploy(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAssetMissing):
			fail(c, http.StatusPreconditionFailed, "google play icon required")
		case errors.Is(err, common.ErrDeployInFlight):
			fail(c, http.StatusConflict, "deployment already running")
		default:
			fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true})
}

// Announcement handlers

func (s *Server) handleListAnnouncements(c *gin.Context) {
	var list = s.svc.CMS.Active()
	if c.Query("all") == "true" {
		if !s.requireAdmin(c) {
			return
		}
		list = s.svc.CMS.List()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "announcements": list, "count": len(list)})
}

func (s *Server) handleCreateAnnouncement(c *gin.Context) {
	if !s.requireAdmin(c) {
		return
	}
	var req struct {
		Title    string `json:"title" binding:"required"`
		Text     string `json:"text" binding:"required"`
		ImageURL string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := s.svc.CMS.Add(c.Request.Context(), req.Title, req.Text, req.ImageURL)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "announcement": entry})
}

func (s *Server) handleUpdateAnnouncement(c *gin.Context) {
	if !s.requireAdmin(c) {
		return
	}
	var req struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.svc.CMS.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fail(c, http.StatusNotFound, "announcement not found")
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Admin handlers

func (s *Server) handleListUsers(c *gin.Context) {
	if !s.requireAdmin(c) {
		return
	}
	users, err := s.svc.Session.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": out, "count": len(out)})
}

// handleDeleteUser removes the account and purges its captures.
func (s *Server) handleDeleteUser(c *gin.Context) {
	if !s.requireAdmin(c) {
		return
	}
	id := c.Param("id")

	// Purge before touching the registry: a self-delete signs the session
	// out, and an unauthenticated purge would not be written through.
	if err := s.svc.Ideas.PurgeUser(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.svc.Session.DeleteUser(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Notification handler

func (s *Server) handleNotification(c *gin.Context) {
	msg, active := s.svc.Notifier.Active()
	c.JSON(http.StatusOK, gin.H{"success": true, "active": active, "message": msg})
}

package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warblerapp/warbler/internal/auth"
	"github.com/warblerapp/warbler/internal/cache"
	"github.com/warblerapp/warbler/internal/db"
	"github.com/warblerapp/warbler/pkg/config"
	"github.com/warblerapp/warbler/pkg/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// Router wires HTTP routes to handlers
type Router struct {
	cfg      *config.Config
	sessions *Sessions
	auth     *auth.Service
	users    *db.UserRepository
	messages *db.MessageRepository
	follows  *db.FollowRepository
	likes    *db.LikeRepository
	cache    *cache.Cache
	logger   *zap.Logger
}

// NewRouter creates a new web router
func NewRouter(cfg *config.Config, database *db.DB, redisCache *cache.Cache) *Router {
	repo := db.NewRepository(database.DB)
	return &Router{
		cfg:      cfg,
		sessions: NewSessions(&cfg.Session),
		auth:     auth.NewService(repo),
		users:    db.NewUserRepository(repo),
		messages: db.NewMessageRepository(repo),
		follows:  db.NewFollowRepository(repo),
		likes:    db.NewLikeRepository(repo),
		cache:    redisCache,
		logger:   logging.GetLogger().With(zap.String("component", "web-router")),
	}
}

// SetupRoutes sets up all routes on the gin engine
func (r *Router) SetupRoutes(engine *gin.Engine) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	engine.SetHTMLTemplate(tmpl)

	engine.Use(r.traceRequests)
	engine.Use(r.loadCurrentUser)
	if r.cfg.Session.CSRFEnabled {
		engine.Use(r.verifyCSRF)
	}

	// Health check endpoint
	engine.GET("/health", r.healthHandler)

	// Home
	engine.GET("/", r.showHome)

	// Auth
	engine.GET("/signup", r.showSignup)
	engine.POST("/signup", r.handleSignup)
	engine.GET("/login", r.showLogin)
	engine.POST("/login", r.handleLogin)
	engine.GET("/logout", r.requireLogin, r.handleLogout)

	// Users
	engine.GET("/users", r.listUsers)
	engine.GET("/users/profile", r.requireLogin, r.showEditProfile)
	engine.POST("/users/profile", r.requireLogin, r.handleEditProfile)
	engine.POST("/users/delete", r.requireLogin, r.handleDeleteUser)
	engine.GET("/users/:id", r.showUser)
	engine.GET("/users/:id/following", r.requireLogin, r.showFollowing)
	engine.GET("/users/:id/followers", r.requireLogin, r.showFollowers)
	engine.GET("/users/:id/likes", r.requireLogin, r.showLikes)
	engine.POST("/users/follow/:id", r.requireLogin, r.handleFollow)
	engine.POST("/users/stop-following/:id", r.requireLogin, r.handleStopFollowing)

	// Messages
	engine.GET("/messages/new", r.requireLogin, r.showNewMessage)
	engine.POST("/messages/new", r.requireLogin, r.handleNewMessage)
	engine.GET("/messages/:id", r.showMessage)
	engine.POST("/messages/:id/delete", r.requireLogin, r.handleDeleteMessage)
	engine.POST("/messages/:id/like", r.requireLogin, r.handleToggleLike)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "warbler",
	})
}

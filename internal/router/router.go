package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"yatube/internal/handlers"
	"yatube/internal/middleware"
	"yatube/internal/pagecache"
	"yatube/internal/services"
	"yatube/pkg/config"
	"yatube/web"
)

// Options carries everything the HTTP layer depends on
type Options struct {
	Config   *config.Config
	DB       *gorm.DB
	Services *services.Services
	Cache    pagecache.Store
	Logger   *zap.Logger
}

// New builds the engine with every route of the site
func New(opts Options) (*gin.Engine, error) {
	cfg := opts.Config
	misc := handlers.NewMiscHandler(opts.DB, opts.Logger)

	r := gin.New()
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(gin.CustomRecovery(misc.Recover))

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   14 * 24 * 3600,
		HttpOnly: true,
		Secure:   cfg.Server.Mode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(cfg.Session.Name, store))

	renderer, err := web.Renderer(handlers.TemplateFuncs(opts.Services.Media))
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	r.Static(opts.Services.Media.URLPrefix(), opts.Services.Media.Root())
	r.GET("/healthz", misc.Health)

	r.Use(middleware.LoadUser(opts.Services.Users, opts.Logger))
	RegisterRoutes(r, opts, misc)
	return r, nil
}

// RegisterRoutes wires the handlers to their URLs
func RegisterRoutes(r *gin.Engine, opts Options, misc *handlers.MiscHandler) {
	svc, logger := opts.Services, opts.Logger

	authHandler := handlers.NewAuthHandler(svc, logger)
	feedHandler := handlers.NewFeedHandler(svc, logger)
	postHandler := handlers.NewPostHandler(svc, logger)
	followHandler := handlers.NewFollowHandler(svc, logger)
	adminHandler := handlers.NewAdminHandler(svc, opts.Cache, logger)

	// Public Routes
	r.GET("/", pagecache.Cache(opts.Cache, opts.Config.Cache.TTL, middleware.Viewer), feedHandler.Index)
	r.GET("/group/:slug/", feedHandler.GroupPosts)
	r.GET("/404/", misc.PageNotFound)
	r.GET("/500/", misc.ServerError)
	r.GET("/about/author/", misc.AboutAuthor)
	r.GET("/about/tech/", misc.AboutTech)

	r.GET("/auth/signup/", authHandler.ShowSignup)
	r.POST("/auth/signup/", authHandler.Signup)
	r.GET("/auth/login/", authHandler.ShowLogin)
	r.POST("/auth/login/", authHandler.Login)
	r.GET("/auth/logout/", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/new/", postHandler.NewPost)
		authorized.POST("/new/", postHandler.NewPost)
		authorized.GET("/follow/", feedHandler.FollowIndex)
	}

	// Admin Routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), adminHandler.AdminRequired())
	{
		admin.GET("/", adminHandler.Dashboard)
		admin.POST("/cache/clear/", adminHandler.ClearCache)
		admin.GET("/groups/", adminHandler.Groups)
		admin.POST("/groups/", adminHandler.CreateGroup)
		admin.POST("/groups/:id/delete/", adminHandler.DeleteGroup)
		admin.GET("/posts/", adminHandler.Posts)
		admin.POST("/posts/:id/delete/", adminHandler.DeletePost)
		admin.GET("/comments/", adminHandler.Comments)
		admin.POST("/comments/:id/delete/", adminHandler.DeleteComment)
		admin.GET("/follows/", adminHandler.Follows)
		admin.POST("/follows/:id/delete/", adminHandler.DeleteFollow)
	}

	// Author Routes
	r.GET("/:username/", feedHandler.Profile)
	r.GET("/:username/:post_id/", postHandler.PostView)
	r.POST("/:username/:post_id/", postHandler.PostView)

	byAuthor := r.Group("/:username")
	byAuthor.Use(middleware.AuthRequired())
	{
		byAuthor.GET("/follow/", followHandler.ProfileFollow)
		byAuthor.GET("/unfollow/", followHandler.ProfileUnfollow)
		byAuthor.GET("/:post_id/edit/", postHandler.PostEdit)
		byAuthor.POST("/:post_id/edit/", postHandler.PostEdit)
		byAuthor.GET("/:post_id/comment/", postHandler.AddComment)
		byAuthor.POST("/:post_id/comment/", postHandler.AddComment)
	}

	r.NoRoute(misc.PageNotFound)
}

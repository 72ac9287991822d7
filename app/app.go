// Package app wires the dependencies, middleware and handlers together
package app

import (
	"bitwise74/game-clips/app/root"
	"bitwise74/game-clips/app/user"
	"bitwise74/game-clips/app/video"
	"bitwise74/game-clips/app/view"
	"bitwise74/game-clips/config"
	"bitwise74/game-clips/db"
	"bitwise74/game-clips/internal"
	"bitwise74/game-clips/pkg/middleware"
	"bitwise74/game-clips/pkg/security"
	"bitwise74/game-clips/web"
	"fmt"
	"net/http"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const maxFormSize = 1 << 20

// App owns everything opened at startup. Close releases it again
type App struct {
	Deps   *internal.Deps
	Router *gin.Engine

	limiter *middleware.RateLimiter
}

// New opens the database described by cfg and builds the app around it
func New(cfg *config.Config) (*App, error) {
	gdb, err := db.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	d := &internal.Deps{
		DB:       gdb,
		Argon:    security.New(),
		Sessions: security.NewSessions(cfg.JWTSecret, cfg.SessionTTL, cfg.SSL),
	}

	a, err := NewWithDeps(d, cfg)
	if err != nil {
		db.Close(gdb)
		return nil, err
	}

	return a, nil
}

// NewWithDeps builds the router on top of already created dependencies
func NewWithDeps(d *internal.Deps, cfg *config.Config) (*App, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates, %w", err)
	}

	a := &App{
		Deps: d,
		limiter: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit,
			Burst:             cfg.RateLimit * 2,
		}),
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	a.Router = router

	router.Use(
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == http.MethodHead
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
		a.limiter.Middleware(),
	)

	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "HEAD"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	router.NoRoute(func(c *gin.Context) {
		view.Fail(c, http.StatusNotFound, "This page doesn't exist", nil)
	})
	router.NoMethod(func(c *gin.Context) {
		view.Fail(c, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	session := middleware.NewSessionMiddleware(d.DB, d.Sessions)

	// GET / 			-> Landing page
	if cfg.LandingCacheTTL > 0 {
		store := persist.NewMemoryStore(time.Minute)
		router.GET("/", cache.CacheByRequestURI(store, cfg.LandingCacheTTL, cache.WithDiscardHeaders([]string{"X-Request-ID"})), root.Index)
	} else {
		router.GET("/", root.Index)
	}

	// HEAD /heartbeat 		-> Used to check if the server is alive
	router.HEAD("/heartbeat", root.Heartbeat)

	forms := router.Group("", middleware.BodySizeLimiter(maxFormSize))
	{
		// GET,POST /login 	-> Login form, sets the session cookie
		both(forms, "/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// GET,POST /register	-> Registration form
		both(forms, "/register", func(c *gin.Context) { user.UserRegister(c, d) })
	}

	authed := forms.Group("", session)
	{
		// GET,POST /logout	-> Drops the session
		both(authed, "/logout", func(c *gin.Context) { user.UserLogout(c, d) })

		// GET,POST /profile	-> Shows and updates the user's own profile
		both(authed, "/profile", func(c *gin.Context) { user.UserProfile(c, d) })

		// GET,POST /dashboard	-> Every uploaded video
		both(authed, "/dashboard", func(c *gin.Context) { video.Dashboard(c, d) })

		// GET,POST /upload	-> Submits a link to a video
		both(authed, "/upload", func(c *gin.Context) { video.VideoUpload(c, d) })
	}

	return a, nil
}

// Close stops background work and closes the database
func (a *App) Close() error {
	a.limiter.Close()

	if a.Deps == nil || a.Deps.DB == nil {
		return nil
	}

	if err := db.Close(a.Deps.DB); err != nil {
		return fmt.Errorf("failed to close database, %w", err)
	}

	return nil
}

func both(g *gin.RouterGroup, path string, h gin.HandlerFunc) {
	g.GET(path, h)
	g.POST(path, h)
}

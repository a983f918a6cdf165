package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pekarna-api/internal/core/auth"
	"pekarna-api/internal/core/cache"
	"pekarna-api/internal/service"
	"pekarna-api/internal/transport/http/handler"
	mdw "pekarna-api/internal/transport/http/middleware"
)

type Options struct {
	// ProtectUserList gates GET /api/users behind the bearer token.
	ProtectUserList bool
	// StaticDir serves the frontend when non-empty.
	StaticDir string
	// Cache is optional; nil disables the user-list cache.
	Cache *cache.Cache
}

// NewAPIEngine assembles the gin engine: ambient middleware chain, health
// and metrics endpoints, static frontend, and the auth/user routes.
func NewAPIEngine(l *zap.Logger, svc *service.Auth, jwter *auth.JWTer, opt Options) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.RateLimitPerIP(20, 40),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if opt.StaticDir != "" {
		r.Static("/static", opt.StaticDir)
		r.StaticFile("/", opt.StaticDir+"/index.html")
	}

	authH := handler.NewAuthHandler(svc, l)
	userH := handler.NewUserHandler(svc, opt.Cache, l)
	authH.Invalidate = userH.InvalidateList

	api := r.Group("/api")
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)

	users := api.Group("/users")
	if opt.ProtectUserList {
		users.Use(mdw.AuthJWT(jwter))
	}
	users.GET("", userH.List)

	return r
}

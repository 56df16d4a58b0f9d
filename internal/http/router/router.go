package router

import (
	"context"
	"net/http"
	"time"

	apphttp "tradein_backend/internal/http"
	"tradein_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the Gin engine: global middleware, health endpoint, the /api/v1
// group, and every module's routes.
func New(app *apphttp.App) *gin.Engine {
	if app.Config.GetEnv() == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if app.Config.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = app.Config.GetCORSOrigins()
	}
	engine.Use(cors.New(corsCfg))

	// Photo uploads are the largest request bodies this server accepts.
	engine.MaxMultipartMemory = 16 << 20

	engine.GET("/api/health", func(c *gin.Context) {
		if app.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := app.Health.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiLimiter := httpkit.NewIPRateLimiter(rate.Limit(2), 30, app.Logger)
	v1 := engine.Group("/api/v1")
	v1.Use(apiLimiter.RateLimit())

	rc := &apphttp.RouterContext{
		Engine:        engine,
		V1:            v1,
		SubmitLimiter: httpkit.NewSubmitRateLimiter(app.Logger),
	}
	for _, m := range app.Modules {
		app.Logger.Info("registering module routes", "module", m.Name())
		m.RegisterRoutes(rc)
	}

	return engine
}

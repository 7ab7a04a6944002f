package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/Marxcruz/hospital-api/internal/middleware"
	"github.com/Marxcruz/hospital-api/pkg/metrics"
)

// Handler registers routes that need no role guard.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// AuthHandler registers routes and attaches role guards per route.
type AuthHandler interface {
	RegisterRoutes(*gin.RouterGroup, *middleware.AuthMiddleware)
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	userH        AuthHandler
	appointmentH AuthHandler
	messageH     AuthHandler
	recordH      AuthHandler
	chatH        AuthHandler
	assistantH   Handler
	healthH      Handler
	wsH          Handler
	metrics      *metrics.Metrics
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
	UploadDir  string
	Timeout    time.Duration
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	userH AuthHandler,
	appointmentH AuthHandler,
	messageH AuthHandler,
	recordH AuthHandler,
	chatH AuthHandler,
	assistantH Handler,
	healthH Handler,
	wsH Handler,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:       engine,
		auth:         auth,
		userH:        userH,
		appointmentH: appointmentH,
		messageH:     messageH,
		recordH:      recordH,
		chatH:        chatH,
		assistantH:   assistantH,
		healthH:      healthH,
		wsH:          wsH,
		metrics:      m,
	}

	if config.Timeout <= 0 {
		config.Timeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
		middleware.RequestID(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   float64(config.RateLimit),
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	// Doctor profile images are served straight off the upload directory.
	if config.UploadDir != "" {
		engine.Static("/uploads", config.UploadDir)
	}

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.healthH.RegisterRoutes(api)
	r.wsH.RegisterRoutes(api)
	r.assistantH.RegisterRoutes(api)

	r.userH.RegisterRoutes(api, r.auth)
	r.appointmentH.RegisterRoutes(api, r.auth)
	r.messageH.RegisterRoutes(api, r.auth)
	r.recordH.RegisterRoutes(api, r.auth)
	r.chatH.RegisterRoutes(api, r.auth)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.ErrorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}

// Package httpapi exposes GrowFlow over a JSON REST API built on gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/growflow/internal/logging"
	"github.com/dmitrijs2005/growflow/internal/server/models"
	"github.com/dmitrijs2005/growflow/internal/server/ratelimit"
	"github.com/dmitrijs2005/growflow/internal/server/services"
)

// APIPrefix is the path prefix of every REST route.
const APIPrefix = "/api"

type UserService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type TaskService interface {
	List(ctx context.Context, userID string) ([]*models.Task, error)
	Get(ctx context.Context, userID, id string) (*models.Task, error)
	Create(ctx context.Context, userID string, in services.NewTask) (*models.Task, error)
	Update(ctx context.Context, userID, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

type SnapshotService interface {
	Create(ctx context.Context, userID string) (*services.SnapshotResult, error)
}

// HealthReporter reports whether the backing store is reachable.
type HealthReporter interface {
	Serving() bool
}

// Options configures a Server. Users, Tasks and Secret are required; the rest
// are optional.
type Options struct {
	Address        string
	Secret         []byte
	Users          UserService
	Tasks          TaskService
	Snapshots      SnapshotService
	Limiter        ratelimit.Limiter
	Health         HealthReporter
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	Logger         logging.Logger
}

type Server struct {
	address   string
	router    *gin.Engine
	logger    logging.Logger
	users     UserService
	tasks     TaskService
	snapshots SnapshotService
	health    HealthReporter
}

func NewServer(o Options) *Server {
	if o.Logger == nil {
		o.Logger = logging.Nop{}
	}
	if o.Gatherer == nil {
		o.Gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(o.Logger))
	r.Use(Metrics())

	if len(o.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     o.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	s := &Server{
		address:   o.Address,
		router:    r,
		logger:    o.Logger.With("module", "http_server"),
		users:     o.Users,
		tasks:     o.Tasks,
		snapshots: o.Snapshots,
		health:    o.Health,
	}

	r.GET("/healthz", s.healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(o.Gatherer, promhttp.HandlerOpts{})))

	api := r.Group(APIPrefix)

	authGroup := api.Group("/auth")
	if o.Limiter != nil {
		authGroup.Use(RateLimit(o.Limiter, s.logger))
	}
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)

	tasks := api.Group("/tasks", RequireAuth(o.Secret))
	tasks.GET("", s.listTasks)
	tasks.POST("", s.createTask)
	tasks.GET("/user", s.currentUser)
	tasks.POST("/snapshots", s.createSnapshot)
	tasks.GET("/:id", s.getTask)
	tasks.PUT("/:id", s.updateTask)
	tasks.DELETE("/:id", s.deleteTask)

	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) healthz(c *gin.Context) {
	if s.health != nil && !s.health.Serving() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_SERVING"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "SERVING"})
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
}

// Dependencies are the collaborators the router hands to its handlers.
type Dependencies struct {
	Users   repository.UserRepositoryInterface
	Columns repository.ColumnRepositoryInterface
	Cards   repository.CardRepositoryInterface
	Tokens  *auth.TokenManager
	// Ping reports whether the store is reachable.
	Ping func(ctx context.Context) error
}

func Init(cfg *config.Config, log *zap.Logger) (*Server, error) {
	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := NewRouter(cfg, log, Dependencies{
		Users:   repository.NewUserRepository(db),
		Columns: repository.NewColumnRepository(db),
		Cards:   repository.NewCardRepository(db),
		Tokens:  auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.JWTTTL),
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Log:    log,
	}, nil
}

func NewRouter(cfg *config.Config, log *zap.Logger, deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(ginzap.GinzapWithConfig(log, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		Context: func(c *gin.Context) []zap.Field {
			return []zap.Field{zap.String("request_id", c.GetString(middleware.RequestIDKey))}
		},
	}))
	r.Use(ginzap.CustomRecoveryWithZap(log, true, func(c *gin.Context, _ any) {
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		c.Abort()
	}))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	userHandler := handler.NewUserHandler(deps.Users, deps.Tokens, log, cfg.IsProduction())
	columnHandler := handler.NewColumnHandler(deps.Columns, log)
	cardHandler := handler.NewCardHandler(deps.Cards, log)

	r.GET("/health", health(deps.Ping))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.POST("/users", userHandler.Register)
		api.POST("/login", userHandler.Login)
		api.DELETE("/users", userHandler.Delete)
		api.PATCH("/users/email", userHandler.UpdateEmail)
		api.PATCH("/users/password", userHandler.UpdatePassword)

		api.GET("/columns/:user_id", columnHandler.GetByUserID)
		api.POST("/columns", columnHandler.Create)
		api.PUT("/columns/:user_id", columnHandler.Update)
		api.DELETE("/columns/:user_id", columnHandler.Delete)

		cards := api.Group("/cards")
		cards.Use(middleware.JWTAuthMiddleware(deps.Tokens))
		{
			cards.GET("/:column_id", cardHandler.GetByColumnID)
			cards.POST("", cardHandler.Create)
			cards.PUT("/:id", cardHandler.Update)
			cards.DELETE("/:id", cardHandler.Delete)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders:  []string{"Content-Type", "Authorization"},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		// Credentials cannot be combined with a wildcard origin.
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = origins
	cc.AllowCredentials = true
	return cc
}

// health godoc
// @Summary      Liveness and database reachability
// @Tags         Health
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /health [get]
func health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		s.Log.Info("Server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			_ = database.Close(s.DB)
			return fmt.Errorf("failed to listen: %w", err)
		}
	case <-ctx.Done():
	}
	s.Log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := srv.Shutdown(shutdownCtx)

	if err := database.Close(s.DB); err != nil {
		s.Log.Error("Failed to close database", zap.Error(err))
	}
	if shutdownErr != nil {
		return fmt.Errorf("server forced to shutdown: %w", shutdownErr)
	}

	s.Log.Info("Server exited properly")
	return nil
}

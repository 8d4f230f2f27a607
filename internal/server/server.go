package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nusantaramc/cms/config"
	"github.com/nusantaramc/cms/internal/handlers"
	"github.com/nusantaramc/cms/internal/helpers"
	"github.com/nusantaramc/cms/internal/middleware"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	gin.SetMode(cfg.GinMode)

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database handle: %w", err)
	}
	defer sqlDB.Close()

	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	if !cfg.AuthEnabled() {
		log.Printf("JWT_SECRET is not set, admin routes are open")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: NewRouter(cfg, db),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// NewRouter wires middleware and routes around an open database.
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("Recovered from panic: %v", recovered)
		helpers.RespondWithError(c, http.StatusInternalServerError, "Internal server error.")
	}))

	setupRoutes(r, cfg, db)
	return r
}

func setupRoutes(r *gin.Engine, cfg *config.Config, db *gorm.DB) {
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.UploaderMiddleware(helpers.NewUploader(cfg.UploadDir, cfg.BaseURL)))
	r.Use(middleware.ConfigMiddleware(cfg))
	r.Use(middleware.JSONBodyMiddleware())

	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api")
	api.GET("/health", handlers.Health)
	api.POST("/auth/login", handlers.Login)

	public := api.Group("")
	{
		public.GET("/events", handlers.ListEvents)
		public.GET("/events/:id", handlers.GetEvent)

		public.GET("/news", handlers.ListNews)
		public.GET("/news/:id", handlers.GetNews)

		public.GET("/categories", handlers.ListCategories)
		public.GET("/categories/:id", handlers.GetCategory)

		public.GET("/products", handlers.ListProducts)
		public.GET("/products/:id", handlers.GetProduct)
		public.GET("/products/:id/whatsapp-qr", handlers.GetProductWhatsAppQR)

		public.GET("/about", handlers.GetAbout)

		public.GET("/gallery", handlers.ListGallery)
		public.GET("/gallery/:id", handlers.GetGalleryItem)

		public.GET("/milestones", handlers.ListMilestones)
		public.GET("/milestones/:id", handlers.GetMilestone)

		public.GET("/home", handlers.GetHome)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminAuthMiddleware(cfg))
	{
		admin.POST("/events", handlers.CreateEvent)
		admin.PUT("/events/:id", handlers.UpdateEvent)
		admin.DELETE("/events/:id", handlers.DeleteEvent)

		admin.POST("/news", handlers.CreateNews)
		admin.PUT("/news/:id", handlers.UpdateNews)
		admin.DELETE("/news/:id", handlers.DeleteNews)

		admin.POST("/categories", handlers.CreateCategory)
		admin.PUT("/categories/:id", handlers.UpdateCategory)
		admin.DELETE("/categories/:id", handlers.DeleteCategory)

		admin.POST("/products", handlers.CreateProduct)
		admin.PUT("/products/:id", handlers.UpdateProduct)
		admin.DELETE("/products/:id", handlers.DeleteProduct)

		admin.PUT("/about", handlers.UpdateAbout)

		admin.POST("/gallery", handlers.CreateGalleryItem)
		admin.PUT("/gallery/:id", handlers.UpdateGalleryItem)
		admin.DELETE("/gallery/:id", handlers.DeleteGalleryItem)

		admin.POST("/milestones", handlers.CreateMilestone)
		admin.PUT("/milestones/:id", handlers.UpdateMilestone)
		admin.DELETE("/milestones/:id", handlers.DeleteMilestone)

		admin.PUT("/home", handlers.UpdateHome)
	}

	r.NoRoute(func(c *gin.Context) {
		helpers.RespondWithError(c, http.StatusNotFound, "Route not found")
	})
}

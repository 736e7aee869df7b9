package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/creativehub/backend/config"
	"github.com/creativehub/backend/internal/api"
	"github.com/creativehub/backend/internal/database"
	"github.com/creativehub/backend/internal/identity"
	"github.com/creativehub/backend/internal/middleware"
	"github.com/creativehub/backend/internal/router"
	"github.com/creativehub/backend/internal/server"
	"github.com/creativehub/backend/internal/service"
	"github.com/creativehub/backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to identity database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate identity schema: %v", err)
	}

	delegate := identity.NewLocalDelegate(db, cfg.JWTSecret)

	st := store.New(delegate)
	delegate.Subscribe(func(p *identity.Principal) {
		st.ResolveSession(p)
	})
	if cfg.SeedDemo {
		st.Seed(store.DemoData())
	}
	// Initial session state: nobody is signed in, and the store is ready.
	st.ResolveSession(nil)

	var suggester service.ISuggestionService
	var uploadLimiter gin.HandlerFunc

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("redis unavailable, suggestions uncached and uploads unthrottled: %v", err)
	} else {
		uploadLimiter = middleware.NewPortfolioCreationRateLimiter(redisClient).Middleware()
	}

	if s, err := service.NewSuggestionService(redisClient); err != nil {
		log.Printf("cover-image suggestions disabled: %v", err)
	} else {
		suggester = s
	}

	var images service.IImageService
	if s3cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("image uploads disabled: %v", err)
	} else {
		images = service.NewImageService(s3cfg)
	}

	authn := middleware.Auth(delegate, st)
	engine := router.Setup(router.Handlers{
		Auth:      api.NewAuthHandler(delegate, st),
		Profile:   api.NewProfileHandler(st),
		Portfolio: api.NewPortfolioHandler(st),
		Job:       api.NewJobHandler(st),
		Suggest:   api.NewSuggestHandler(suggester),
		Image:     api.NewImageHandler(images),
	}, authn, uploadLimiter)

	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cinebook/show-booking/internal/config"
	"github.com/cinebook/show-booking/internal/database"
	"github.com/cinebook/show-booking/internal/handler"
	"github.com/cinebook/show-booking/internal/queue"
	"github.com/cinebook/show-booking/internal/repository"
	"github.com/cinebook/show-booking/internal/router"
	"github.com/cinebook/show-booking/internal/service"
	"github.com/cinebook/show-booking/internal/tmdb"
)

func main() {
	// .env is a convenience for local runs; in deployment the variables
	// come from the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	movieRepo := repository.NewMovieRepo(db)
	showRepo := repository.NewShowRepo(db)
	meta := tmdb.New(cfg.TMDB)

	ingestion := service.NewIngestionService(movieRepo, showRepo, meta)
	query := service.NewQueryService(movieRepo, showRepo)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterShows(e, handler.NewShowHandler(ingestion, query), rdb)
	router.RegisterMovies(e, handler.NewMovieHandler(meta), rdb)

	// Background consumer for shows.scheduled events; it reconnects on
	// its own and never takes the server down.
	go func() {
		if err := queue.StartShowsConsumer(); err != nil {
			log.Printf("shows consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/benbeisheim/chess-arena/internal/config"
	"github.com/benbeisheim/chess-arena/internal/controller"
	"github.com/benbeisheim/chess-arena/internal/engine"
	"github.com/benbeisheim/chess-arena/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		AppName:               "chess-arena",
		DisableStartupMessage: cfg.Level() > log.LevelInfo,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: cfg.AllowOrigins != "*",
	}))

	var searchOpts []engine.SearcherOption
	if cfg.SearchWorkers > 0 {
		searchOpts = append(searchOpts, engine.WithWorkers(cfg.SearchWorkers))
	}
	gameManager := service.NewGameManager(ctx, cfg.MatchmakingInterval, cfg.ClockTime)
	gameService := service.NewGameService(gameManager, engine.NewSearcher(searchOpts...))

	controller.Register(app, gameService, cfg.Origins())

	go func() {
		<-ctx.Done()
		log.Infow("shutting down", "games", gameManager.Len())
		if err := app.Shutdown(); err != nil {
			log.Errorw("shutdown", "error", err)
		}
	}()

	log.Infow("listening", "addr", cfg.Addr, "clock", cfg.ClockTime, "workers", cfg.SearchWorkers)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
	gameService.Wait()
}

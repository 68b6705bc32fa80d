package main

import (
	"os"

	"github.com/benbeisheim/checkers-backend/internal/config"
	"github.com/benbeisheim/checkers-backend/internal/controller"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Errorf("invalid configuration: %v", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	log.SetLevel(level)

	// Initialize services
	gameManager := service.NewGameManager(cfg.SearchDepth, cfg.AIWorkerInterval)
	gameService := service.NewGameService(gameManager)

	app := controller.NewApp(gameService, cfg.AllowOrigins)

	log.Infow("starting server", "addr", cfg.Addr, "depth", cfg.SearchDepth)
	if err := app.Listen(cfg.Addr); err != nil {
		gameManager.Stop()
		log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}

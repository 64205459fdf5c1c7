package main

import (
	"github.com/benbeisheim/flipchess-backend/internal/catalog"
	"github.com/benbeisheim/flipchess-backend/internal/config"
	"github.com/benbeisheim/flipchess-backend/internal/controller"
	"github.com/benbeisheim/flipchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	pieces := catalog.Default()
	if cfg.CatalogPath != "" {
		if pieces, err = catalog.Load(cfg.CatalogPath); err != nil {
			log.Fatal(err)
		}
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.OriginList(),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager(cfg.MatchmakingInterval, cfg.IdleTTL)
	defer gameManager.Close()
	gameService := service.NewGameService(gameManager, pieces)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)
	controller.SetupRoutes(app, gameController, wsController, cfg.AllowedOrigins)

	log.Infof("listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

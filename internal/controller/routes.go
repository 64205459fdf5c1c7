package controller

import (
	"github.com/benbeisheim/flipchess-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes mounts the websocket and REST endpoints on app.
func SetupRoutes(app *fiber.App, gc *GameController, wsc *WebSocketController, origins []string) {
	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}

	wsGroup := app.Group("/ws", middleware.EnsurePlayerID(), middleware.WebSocketUpgrade())
	wsGroup.Get("/game/:gameId", websocket.New(wsc.HandleConnection, wsConfig))
	wsGroup.Get("/matchmaking", websocket.New(wsc.HandleMatchmaking, wsConfig))

	api := app.Group("/api")
	api.Get("/pieces", gc.ListPieces)

	gameRoutes := api.Group("/game", middleware.EnsurePlayerID())
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Post("/join/:gameId", gc.JoinGame)
	gameRoutes.Post("/:gameId/move", gc.MakeMove)
	gameRoutes.Get("/:gameId", gc.GetGameState)
}

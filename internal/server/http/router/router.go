package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/zervix/marketplace/internal/server/http/handlers"
	"github.com/zervix/marketplace/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	messagingHandler := handlers.NewMessagingHandler(facade)
	earningsHandler := handlers.NewEarningsHandler(facade)
	sellerHandler := handlers.NewSellerHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.PATCH("/orders/:id/status", orderHandler.Transition)
	authed.POST("/orders/:id/deliveries", orderHandler.SubmitDelivery)
	authed.POST("/orders/:id/revisions", orderHandler.RequestRevision)

	authed.POST("/conversations", messagingHandler.Start)
	authed.GET("/conversations", messagingHandler.List)
	authed.POST("/conversations/:id/messages", messagingHandler.Send)
	authed.GET("/conversations/:id/messages", messagingHandler.Fetch)

	authed.GET("/earnings", earningsHandler.Snapshot)
	authed.POST("/earnings/withdraw", earningsHandler.Withdraw)
	authed.GET("/earnings/withdrawals", earningsHandler.Withdrawals)

	authed.GET("/sellers/:id", sellerHandler.Profile)
	authed.POST("/gigs/:id/reviews", sellerHandler.Review)

	return engine
}

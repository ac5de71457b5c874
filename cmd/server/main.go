package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hangouts/backend/internal/auth"
	"hangouts/backend/internal/cache"
	"hangouts/backend/internal/config"
	"hangouts/backend/internal/database"
	"hangouts/backend/internal/handler"
	"hangouts/backend/internal/hub"
	"hangouts/backend/internal/store"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "hangouts/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Hangouts API
// @version         1.0
// @description     This is the API for the Hangouts service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	relations := store.NewRelationStore(database.DB)
	chats := store.NewChatStore(database.DB)

	// Fan-out registry and history cache live for the whole process and are
	// handed to the handlers explicitly.
	eventHub := hub.NewHub()
	history := cache.NewHistoryCache(config.AppConfig.RedisAddr, store.HistoryWindow)
	if history.Enabled() {
		log.Println("Redis history cache enabled.")
	}

	userHandler := handler.NewUserHandler(database.DB, relations)
	relationHandler := handler.NewRelationHandler(relations)
	chatHandler := handler.NewChatHandler(chats, eventHub, history)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", userHandler.Register)
			authRoutes.POST("/login", userHandler.Login)
		}

		// Public profile, enriched when a token is sent
		apiV1.GET("/users/:id", auth.OptionalAuthMiddleware(), userHandler.GetUserByID)

		// User and relation routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("/me", userHandler.GetMe)
			userRoutes.GET("/me/requests", relationHandler.ListRequests)

			// Follow edges
			userRoutes.POST("/:id/follow", relationHandler.Follow)
			userRoutes.DELETE("/:id/follow", relationHandler.Unfollow)
			userRoutes.GET("/:id/followers", relationHandler.ListFollowers)
			userRoutes.GET("/:id/following", relationHandler.ListFollowing)

			// Friendships
			userRoutes.GET("/:id/friends", relationHandler.ListFriends)
			userRoutes.POST("/:id/request", relationHandler.SendRequest)
			userRoutes.DELETE("/:id/friend", relationHandler.Unfriend)
		}

		requestRoutes := apiV1.Group("/requests")
		requestRoutes.Use(auth.AuthMiddleware())
		{
			requestRoutes.POST("/:id/accept", relationHandler.AcceptRequest)
			requestRoutes.DELETE("/:id", relationHandler.CancelRequest)
		}

		// Chat routes (protected)
		chatRoutes := apiV1.Group("/chats")
		chatRoutes.Use(auth.AuthMiddleware())
		{
			chatRoutes.POST("", chatHandler.CreateChat)
			chatRoutes.GET("", chatHandler.ListChats)
			chatRoutes.GET("/stream", chatHandler.StreamEvents) // Must be before /:id
			chatRoutes.GET("/:id", chatHandler.GetChat)
			chatRoutes.GET("/:id/messages", chatHandler.ListMessages)
			chatRoutes.POST("/:id/messages", chatHandler.PostMessage)
		}
	}

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server is running on :%s", config.AppConfig.Port)
		log.Printf("Swagger UI is available at http://localhost:%s/swagger/index.html", config.AppConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Shut down on SIGINT/SIGTERM: stop accepting requests, then tear down the
	// fan-out registry so streaming connections end cleanly.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	eventHub.Close()
	if err := history.Close(); err != nil {
		log.Printf("Closing history cache: %v", err)
	}
	log.Println("Server stopped.")
}

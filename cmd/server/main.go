package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/huddleapp/huddle/internal/config"
	"github.com/huddleapp/huddle/internal/database"
	"github.com/huddleapp/huddle/internal/observ"
	postgresrepo "github.com/huddleapp/huddle/internal/repository/postgres"
	"github.com/huddleapp/huddle/internal/service"
	"github.com/huddleapp/huddle/internal/transport/http/handlers"
	"github.com/huddleapp/huddle/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()

	log, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()
	log.Info("connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	workspaceRepo := postgresrepo.NewWorkspaceRepo(pool)
	memberRepo := postgresrepo.NewMemberRepo(pool)
	channelRepo := postgresrepo.NewChannelRepo(pool)
	conversationRepo := postgresrepo.NewConversationRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)
	reactionRepo := postgresrepo.NewReactionRepo(pool)
	eventRepo := postgresrepo.NewEventRepo(pool)
	resourceRepo := postgresrepo.NewResourceRepo(pool)
	fileRepo := postgresrepo.NewFileRepo(pool)

	// Services
	guard := service.NewGuard(memberRepo)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	workspaceService := service.NewWorkspaceService(
		guard, workspaceRepo, memberRepo, channelRepo, conversationRepo,
		messageRepo, reactionRepo, eventRepo, resourceRepo, fileRepo,
	)
	memberService := service.NewMemberService(guard, memberRepo, messageRepo, reactionRepo, conversationRepo)
	channelService := service.NewChannelService(guard, channelRepo, messageRepo, reactionRepo)
	conversationService := service.NewConversationService(guard, conversationRepo, memberRepo)
	messageService := service.NewMessageService(guard, messageRepo, channelRepo, conversationRepo, reactionRepo)
	reactionService := service.NewReactionService(guard, reactionRepo, messageRepo)
	eventService := service.NewEventService(guard, eventRepo)
	resourceService := service.NewResourceService(guard, resourceRepo, fileRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, log)
	memberHandler := handlers.NewMemberHandler(memberService, log)
	channelHandler := handlers.NewChannelHandler(channelService, log)
	conversationHandler := handlers.NewConversationHandler(conversationService, log)
	messageHandler := handlers.NewMessageHandler(messageService, reactionService, log)
	eventHandler := handlers.NewEventHandler(eventService, log)
	resourceHandler := handlers.NewResourceHandler(resourceService, log)
	fileHandler := handlers.NewFileHandler(resourceService, log)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Protected - Auth
	mux.Handle("GET /api/v1/auth/me", auth(http.HandlerFunc(authHandler.Me)))

	// Protected - Workspaces
	mux.Handle("POST /api/v1/workspaces", auth(http.HandlerFunc(workspaceHandler.Create)))
	mux.Handle("GET /api/v1/workspaces", auth(http.HandlerFunc(workspaceHandler.List)))
	mux.Handle("GET /api/v1/workspaces/{id}", auth(http.HandlerFunc(workspaceHandler.Get)))
	mux.Handle("GET /api/v1/workspaces/{id}/info", auth(http.HandlerFunc(workspaceHandler.Info)))
	mux.Handle("PATCH /api/v1/workspaces/{id}", auth(http.HandlerFunc(workspaceHandler.Update)))
	mux.Handle("DELETE /api/v1/workspaces/{id}", auth(http.HandlerFunc(workspaceHandler.Delete)))
	mux.Handle("POST /api/v1/workspaces/{id}/join", auth(http.HandlerFunc(workspaceHandler.Join)))
	mux.Handle("POST /api/v1/workspaces/{id}/join-code", auth(http.HandlerFunc(workspaceHandler.NewJoinCode)))

	// Protected - Members
	mux.Handle("GET /api/v1/workspaces/{id}/members", auth(http.HandlerFunc(memberHandler.List)))
	mux.Handle("GET /api/v1/workspaces/{id}/members/me", auth(http.HandlerFunc(memberHandler.Current)))
	mux.Handle("GET /api/v1/members/{id}", auth(http.HandlerFunc(memberHandler.Get)))
	mux.Handle("PATCH /api/v1/members/{id}", auth(http.HandlerFunc(memberHandler.UpdateRole)))
	mux.Handle("DELETE /api/v1/members/{id}", auth(http.HandlerFunc(memberHandler.Remove)))

	// Protected - Channels
	mux.Handle("POST /api/v1/workspaces/{id}/channels", auth(http.HandlerFunc(channelHandler.Create)))
	mux.Handle("GET /api/v1/workspaces/{id}/channels", auth(http.HandlerFunc(channelHandler.List)))
	mux.Handle("GET /api/v1/channels/{id}", auth(http.HandlerFunc(channelHandler.Get)))
	mux.Handle("PATCH /api/v1/channels/{id}", auth(http.HandlerFunc(channelHandler.Update)))
	mux.Handle("DELETE /api/v1/channels/{id}", auth(http.HandlerFunc(channelHandler.Delete)))

	// Protected - Conversations
	mux.Handle("POST /api/v1/workspaces/{id}/conversations", auth(http.HandlerFunc(conversationHandler.CreateOrGet)))

	// Protected - Messages
	mux.Handle("POST /api/v1/messages", auth(http.HandlerFunc(messageHandler.Create)))
	mux.Handle("GET /api/v1/messages", auth(http.HandlerFunc(messageHandler.List)))
	mux.Handle("GET /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Get)))
	mux.Handle("PATCH /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Update)))
	mux.Handle("DELETE /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Delete)))
	mux.Handle("POST /api/v1/messages/{id}/reactions", auth(http.HandlerFunc(messageHandler.ToggleReaction)))

	// Protected - Events
	mux.Handle("POST /api/v1/workspaces/{id}/events", auth(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("GET /api/v1/workspaces/{id}/events", auth(http.HandlerFunc(eventHandler.List)))
	mux.Handle("GET /api/v1/events/{id}", auth(http.HandlerFunc(eventHandler.Get)))
	mux.Handle("PATCH /api/v1/events/{id}", auth(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /api/v1/events/{id}", auth(http.HandlerFunc(eventHandler.Delete)))

	// Protected - Resources
	mux.Handle("POST /api/v1/workspaces/{id}/resources", auth(http.HandlerFunc(resourceHandler.Upload)))
	mux.Handle("GET /api/v1/workspaces/{id}/resources", auth(http.HandlerFunc(resourceHandler.List)))
	mux.Handle("GET /api/v1/resources/{id}", auth(http.HandlerFunc(resourceHandler.Get)))
	mux.Handle("DELETE /api/v1/resources/{id}", auth(http.HandlerFunc(resourceHandler.Delete)))

	// Protected - Files
	mux.Handle("POST /api/v1/files", auth(http.HandlerFunc(fileHandler.Upload)))
	mux.Handle("GET /api/v1/files/{id}", auth(http.HandlerFunc(fileHandler.Download)))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Info("starting server", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, middleware.CORS(mux)); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

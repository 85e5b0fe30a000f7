package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/the3dsandwich/csci3100-grp31/internal/api/http"
	"github.com/the3dsandwich/csci3100-grp31/internal/api/http/middleware"
	authmw "github.com/the3dsandwich/csci3100-grp31/internal/auth/middleware"
	"github.com/the3dsandwich/csci3100-grp31/internal/eventtypes"
	"github.com/the3dsandwich/csci3100-grp31/internal/images"

	chathttp "github.com/the3dsandwich/csci3100-grp31/internal/chats/http"
	chatrepo "github.com/the3dsandwich/csci3100-grp31/internal/chats/repository"
	chatservice "github.com/the3dsandwich/csci3100-grp31/internal/chats/service"
	eventhttp "github.com/the3dsandwich/csci3100-grp31/internal/events/http"
	eventrepo "github.com/the3dsandwich/csci3100-grp31/internal/events/repository"
	eventservice "github.com/the3dsandwich/csci3100-grp31/internal/events/service"
	friendhttp "github.com/the3dsandwich/csci3100-grp31/internal/friends/http"
	friendrepo "github.com/the3dsandwich/csci3100-grp31/internal/friends/repository"
	friendservice "github.com/the3dsandwich/csci3100-grp31/internal/friends/service"
	profilehttp "github.com/the3dsandwich/csci3100-grp31/internal/profiles/http"
	profilerepo "github.com/the3dsandwich/csci3100-grp31/internal/profiles/repository"
	profileservice "github.com/the3dsandwich/csci3100-grp31/internal/profiles/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Firebase       *FirebaseClients
	Redis          *redis.Client
}

// Services holds the wired service layer so callers outside the router
// (the reconcile scheduler) can share the same instances.
type Services struct {
	Profiles *profileservice.ProfileService
	Events   *eventservice.EventService
	Chats    *chatservice.ChatService
	Friends  *friendservice.FriendService
	EventsDB *eventrepo.Repo
}

func BuildRouter(dep RouterDeps) (*gin.Engine, *Services) {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis)
	healthHandler.RegisterRoutes(r)

	fs := dep.Firebase.Firestore

	profileRepo := profilerepo.New(fs)
	eventRepo := eventrepo.New(fs)
	chatRepo := chatrepo.New(fs)
	friendRepo := friendrepo.New(fs)

	typeCatalog := eventtypes.NewCache(eventtypes.NewRepo(fs), dep.Redis)

	profileSvc := profileservice.NewProfileService(profileRepo)
	chatSvc := chatservice.NewChatService(chatRepo, profileRepo, eventRepo, typeCatalog)
	eventSvc := eventservice.NewEventService(eventRepo, profileRepo, chatSvc)
	friendSvc := friendservice.NewFriendService(friendRepo)

	uploader := images.NewUploader(dep.Firebase.Bucket)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())
	api.Use(authmw.FirebaseAuthMiddleware(dep.Firebase.Auth))

	profilehttp.New(profileSvc, uploader).Register(api)
	eventtypes.NewHandler(typeCatalog).Register(api)
	eventhttp.New(eventSvc).Register(api)
	chathttp.New(chatSvc).Register(api)
	friendhttp.New(friendSvc).Register(api)

	return r, &Services{
		Profiles: profileSvc,
		Events:   eventSvc,
		Chats:    chatSvc,
		Friends:  friendSvc,
		EventsDB: eventRepo,
	}
}

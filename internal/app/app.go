package app

import (
	"fmt"
	"net/http"
	"voiceremind/internal/app/deps"
	"voiceremind/internal/app/services"
	"voiceremind/internal/http/handlers/callback"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Method(
		http.MethodPost,
		"/callback",
		callback.New(deps.Logger, deps.SignatureValidator, s.CreateReminderFromVoice),
	)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}

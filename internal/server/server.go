package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lazypower/petd/internal/game"
	"github.com/lazypower/petd/internal/llm"
	"github.com/lazypower/petd/internal/store"
)

// Voice is the speech backend used by the audio routes.
type Voice interface {
	TextToSpeech(ctx context.Context, text string) ([]byte, error)
	SoundEffect(ctx context.Context, prompt string) ([]byte, error)
	SpeechToText(ctx context.Context, audio []byte, filename string) (string, error)
}

// Server is the petd HTTP API server.
type Server struct {
	db        *store.DB
	game      *game.Service
	companion *llm.Companion
	voice     Voice
	router    chi.Router
	version   string
	started   time.Time
	now       func() time.Time
}

// New creates a new Server. Chat and voice routes answer 503 until
// SetCompanion and SetVoice are called.
func New(db *store.DB, svc *game.Service, version string) *Server {
	s := &Server{
		db:      db,
		game:    svc,
		version: version,
		started: time.Now(),
		now:     time.Now,
	}
	s.routes()
	return s
}

// SetCompanion enables the chat routes.
func (s *Server) SetCompanion(c *llm.Companion) {
	s.companion = c
}

// SetVoice enables the audio routes.
func (s *Server) SetVoice(v Voice) {
	s.voice = v
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Logger)

		r.Get("/health", s.handleHealth)
		r.Get("/profile", s.handleProfile)
		r.Get("/shop", s.handleShop)

		r.Post("/actions/{action}", s.handleAction)
		r.Post("/shop/buy", s.handleBuy)
		r.Post("/shop/equip", s.handleEquip)
		r.Post("/minigame/result", s.handleMinigame)

		r.Post("/chat", s.handleChat)
		r.Post("/action-feedback", s.handleActionFeedback)
		r.Post("/reminder", s.handleReminder)

		r.Post("/tts", s.handleTTS)
		r.Post("/sfx", s.handleSFX)
		r.Post("/stt", s.handleSTT)
	})

	r.Get("/*", spaHandler())

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.PingContext(r.Context()); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/verify"
)

// maxBodyBytes caps request bodies; every payload here is a few numbers.
const maxBodyBytes = 1 << 14

// Server exposes rounds and verification over HTTP.
type Server struct {
	gen      problemgen.Generator
	verifier verify.Verifier
	sessions sessions.Store
}

// New creates a Server. Each browser session owns one round, stored in
// sessionStore.
func New(gen problemgen.Generator, verifier verify.Verifier, sessionStore sessions.Store) *Server {
	return &Server{
		gen:      gen,
		verifier: verifier,
		sessions: sessionStore,
	}
}

// Handler returns the API router wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/round", s.getRound).Methods("GET", "OPTIONS")
	api.HandleFunc("/round", s.newRound).Methods("POST", "OPTIONS")
	api.HandleFunc("/round/answer", s.answer).Methods("POST", "OPTIONS")
	api.HandleFunc("/verify", s.verify).Methods("POST", "OPTIONS")

	return r
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

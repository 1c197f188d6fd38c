// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/0xcro3dile/mohur-go/internal/domain/entities"
	"github.com/0xcro3dile/mohur-go/internal/domain/knowledge"
	"github.com/0xcro3dile/mohur-go/internal/domain/ports"
	"github.com/0xcro3dile/mohur-go/internal/domain/usecases"
)

//go:embed static/*
var staticFS embed.FS

// genericApology is returned on unhandled internal failures. Stack traces
// and raw errors stay server-side.
const genericApology = "Something went wrong on my end. Please try again."

// Server is the HTTP server for the chatbot API and frontend.
type Server struct {
	resolver *usecases.Resolver
	store    *knowledge.Store
	llm      ports.GenerationService
	static   fs.FS
	addr     string
}

// NewServer creates a new HTTP server.
func NewServer(
	resolver *usecases.Resolver,
	store *knowledge.Store,
	llm ports.GenerationService,
	addr string,
) (*Server, error) {
	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	return &Server{
		resolver: resolver,
		store:    store,
		llm:      llm,
		static:   staticContent,
		addr:     addr,
	}, nil
}

// Handler builds the full route tree with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API
	mux.HandleFunc("/ask", s.handleAsk)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/admin/kb", s.handleAdminKB)

	// Frontend with client-side-routing fallback
	mux.HandleFunc("/", s.handleStatic)

	return corsMiddleware(loggingMiddleware(recoverMiddleware(mux)))
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	log.Printf("[INFO] Mohur AI server starting on %s", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	return server.ListenAndServe()
}

// handleAsk resolves a single question.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res := s.resolver.Resolve(r.Context(), req.Question)

	status := http.StatusOK
	if res.Source == entities.SourceNone {
		// Empty or whitespace-only question.
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"answer": res.Answer})
}

// handleHealth reports service status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	provider := "none"
	if s.llm != nil && s.llm.Configured() {
		provider = s.llm.Name()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":                 "healthy",
		"llm":                    provider,
		"knowledge_base_entries": s.store.Count(),
	})
}

// handleAdminKB exposes knowledge base CRUD.
func (s *Server) handleAdminKB(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListKB(w, r)
	case http.MethodPost:
		s.handleInsertKB(w, r)
	case http.MethodDelete:
		s.handleDeleteKB(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleListKB(w http.ResponseWriter, r *http.Request) {
	snapshot := s.store.Snapshot()
	entries := make(map[string]string, len(snapshot))
	for _, e := range snapshot {
		entries[e.Question] = e.Answer
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(snapshot),
		"entries": entries,
	})
}

func (s *Server) handleInsertKB(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.store.Insert(r.Context(), req.Question, req.Answer); err != nil {
		if errors.Is(err, knowledge.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "question and answer must be non-empty")
			return
		}
		log.Printf("[ERROR] inserting knowledge entry: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save knowledge base")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": s.store.Count()})
}

func (s *Server) handleDeleteKB(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.store.Delete(r.Context(), req.Question); err != nil {
		if errors.Is(err, knowledge.ErrNotFound) {
			writeError(w, http.StatusNotFound, "knowledge entry not found")
			return
		}
		log.Printf("[ERROR] deleting knowledge entry: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save knowledge base")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": s.store.Count()})
}

// handleStatic serves the bundled frontend, falling back to index.html for
// client-side routes.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	p := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if p != "" && p != "." {
		if f, err := s.static.Open(p); err == nil {
			f.Close()
			http.FileServer(http.FS(s.static)).ServeHTTP(w, r)
			return
		}
	}

	data, err := fs.ReadFile(s.static, "index.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()[:8]
		next.ServeHTTP(w, r)
		log.Printf("[INFO] %s %s %s %v", reqID, r.Method, r.URL.Path, time.Since(start))
	})
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[ERROR] panic handling %s %s: %v", r.Method, r.URL.Path, rec)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"answer": genericApology})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			return
		}
		next.ServeHTTP(w, r)
	})
}

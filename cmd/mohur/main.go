// Command mohur runs the Mohur AI question-answering backend.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/0xcro3dile/mohur-go/internal/adapters/llm"
	"github.com/0xcro3dile/mohur-go/internal/adapters/persistence"
	"github.com/0xcro3dile/mohur-go/internal/adapters/watcher"
	"github.com/0xcro3dile/mohur-go/internal/config"
	"github.com/0xcro3dile/mohur-go/internal/domain/knowledge"
	"github.com/0xcro3dile/mohur-go/internal/domain/matching"
	"github.com/0xcro3dile/mohur-go/internal/domain/ports"
	"github.com/0xcro3dile/mohur-go/internal/domain/rules"
	"github.com/0xcro3dile/mohur-go/internal/domain/usecases"
	httpserver "github.com/0xcro3dile/mohur-go/internal/infrastructure/http"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("[ERROR] %v", err)
	}
}

func run() error {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var persist ports.KnowledgePersistence
	switch cfg.KBBackend {
	case "sqlite":
		sqliteStore, err := persistence.NewSQLiteStore(cfg.KBPath)
		if err != nil {
			return err
		}
		defer sqliteStore.Close()
		persist = sqliteStore
	default:
		persist = persistence.NewJSONFile(cfg.KBPath)
	}

	store := knowledge.NewStore(ctx, persist)
	log.Printf("[INFO] knowledge base ready (%d entries, backend=%s)", store.Count(), cfg.KBBackend)

	gemini := llm.NewGeminiAdapter(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
	if !gemini.Configured() {
		log.Printf("[WARN] no Gemini API key configured, LLM fallback disabled")
	}

	resolver := usecases.NewResolver(store, matching.NewMatcher(), rules.NewResponder(), gemini)

	if cfg.WatchKB && cfg.KBBackend == "json" {
		if err := watchKnowledgeFile(ctx, store, cfg.KBPath); err != nil {
			log.Printf("[WARN] knowledge file watching disabled: %v", err)
		}
	}

	server, err := httpserver.NewServer(resolver, store, gemini, cfg.Addr())
	if err != nil {
		return err
	}
	return server.Start(ctx)
}

// watchKnowledgeFile reloads the store when the backing file changes
// out-of-band, so hand edits are picked up without a restart.
func watchKnowledgeFile(ctx context.Context, store *knowledge.Store, path string) error {
	w, err := watcher.NewFSNotifyWatcher()
	if err != nil {
		return err
	}

	events, err := w.Watch(ctx, path)
	if err != nil {
		w.Stop()
		return err
	}

	go func() {
		defer w.Stop()
		for ev := range events {
			if ev.Operation == ports.FileDeleted {
				continue
			}
			if err := store.Reload(ctx); err != nil {
				log.Printf("[WARN] %v", err)
				continue
			}
			log.Printf("[INFO] knowledge base reloaded from %s (%d entries)", path, store.Count())
		}
	}()
	return nil
}

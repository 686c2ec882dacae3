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

	"github.com/joho/godotenv"

	"github.com/zhouzirui/speakit/backend/internal/config"
	"github.com/zhouzirui/speakit/backend/internal/handler"
	sessionmodel "github.com/zhouzirui/speakit/backend/internal/model/session"
	"github.com/zhouzirui/speakit/backend/internal/model/topic"
	"github.com/zhouzirui/speakit/backend/internal/service/ai"
	"github.com/zhouzirui/speakit/backend/internal/service/analyzer"
	coachservice "github.com/zhouzirui/speakit/backend/internal/service/coach"
	"github.com/zhouzirui/speakit/backend/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize session store: SESSION_DB_PATH 配置后使用 SQLite 持久化，
	// 否则使用内存存储。
	var store sessionmodel.Store
	if cfg.Store.Path != "" {
		sqliteStore, err := sqlite.Open(cfg.Store.Path)
		if err != nil {
			log.Fatalf("failed to open session database: %v", err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
		log.Printf("session store backed by sqlite at %s", cfg.Store.Path)
	} else {
		store = sessionmodel.NewMemoryStore()
		log.Println("session store running in-memory")
	}

	// Initialize analysis provider (simulated; a real provider is a drop-in)
	sim := analyzer.NewSimulated(cfg.Analyzer.Seed)

	// Initialize AI generation service
	var generator coachservice.Generator
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing with fallback coaching content - 请检查 Ark 模型相关环境变量")
		} else {
			generator = aiService
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark 凭证未配置，教练功能使用静态兜底内容")
	}

	coachSvc := coachservice.NewService(generator, topic.Seed())

	router := handler.NewRouter(store, sim, sim, coachSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("SpeakIt backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

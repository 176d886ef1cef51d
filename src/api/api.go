package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	aicore "github.com/retainworks/retainbot/src/ai/core"
	_ "github.com/retainworks/retainbot/src/ai/providers"
	"github.com/retainworks/retainbot/src/api/config"
	"github.com/retainworks/retainbot/src/api/data"
	"github.com/retainworks/retainbot/src/api/webserver"
	"github.com/retainworks/retainbot/src/retention/agent"
	"github.com/retainworks/retainbot/src/retention/conversation"
	"github.com/retainworks/retainbot/src/retention/prompt"
	"github.com/retainworks/retainbot/src/retention/salescache"
	"github.com/retainworks/retainbot/src/retention/tools"
	"github.com/retainworks/retainbot/src/retention/types"
	"github.com/retainworks/retainbot/src/store"
)

func newStore(cfg config.Config) store.Store {
	if cfg.StoreBackend == "memory" {
		log.Printf("store: using in-memory backend")
		return store.NewMemory()
	}
	db := data.MustMySQL(cfg.MySQLDSN)
	if err := store.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return store.NewMySQL(db)
}

func main() {
	cfg := config.Load()

	docs := newStore(cfg)

	var publish conversation.Publisher
	if cfg.RedisURL != "" {
		rdb := data.MustRedis(cfg.RedisURL)
		publish = func(ctx context.Context, customerID string, turn types.Turn) error {
			return data.PublishTurn(ctx, rdb, customerID, turn)
		}
	}

	aiClient, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:    cfg.Provider,
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		Temperature: cfg.Temp,
		HTTPTimeout: cfg.HTTPTimeout,
		GrokKey:     cfg.GrokKey,
		OpenAIKey:   cfg.OpenAIKey,
	})
	if err != nil {
		log.Fatalf("ai: %v", err)
	}

	statsCache := salescache.New(func(ctx context.Context) (*types.SalesStats, error) {
		var stats types.SalesStats
		if err := docs.Get(ctx, store.SalesBucket, store.SalesStatsKey, &stats); err != nil {
			return nil, err
		}
		return &stats, nil
	})

	registry := tools.NewRegistry()
	registry.Register(tools.NewTimeTool())
	registry.Register(tools.NewComplaintTool(docs, statsCache, aiClient))
	registry.Register(tools.NewSimilarProductsTool(docs))
	registry.Register(tools.NewPurchaseTool(docs))

	conv := conversation.New(docs, publish)
	bot := agent.New(aiClient, registry, conv, prompt.System,
		agent.WithHistoryLimit(cfg.HistoryLimit))

	router := webserver.New(bot)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("retainbot API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}

// cmd/news-agent/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"news-agent/internal/agent/discuss"
	"news-agent/internal/agent/orchestrator"
	"news-agent/internal/agent/session"
	"news-agent/internal/common/config"
	"news-agent/internal/common/logger"
	"news-agent/internal/news"
	"news-agent/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting news agent",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	fetchTimeout := cfg.Providers.FetchTimeout()

	newsAPI := news.NewNewsAPIClient(cfg.Providers.NewsAPI, fetchTimeout, log)
	nyt := news.NewNYTClient(cfg.Providers.NYT, fetchTimeout, log)
	guardian := news.NewGuardianClient(cfg.Providers.Guardian, fetchTimeout, log)

	if !newsAPI.Configured() && !nyt.Configured() && !guardian.Configured() {
		zapLog.Warn("no news provider configured; fetch operations will return empty results")
	}

	aggregator := news.NewAggregator(newsAPI, nyt, guardian, cfg.Cache.EntryTTL(), log)

	store := session.NewStore(cfg.Session.MaxIdleDuration(), log)

	discussant := discuss.NewClient(cfg.OpenAI, log)
	if !discussant.Configured() {
		zapLog.Warn("no generation credential configured; discussion replies will use the stock fallback")
	}

	orch := orchestrator.New(store, aggregator, discussant, log)

	srv := server.NewServer(cfg.Server, log)
	server.NewRouter(srv.Echo, orch, aggregator, discussant, log).Bind()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if interval := cfg.Session.SweepIntervalDuration(); interval > 0 {
		go store.RunSweeper(interval, ctx.Done())
	}

	if err := srv.Start(ctx); err != nil {
		zapLog.Fatal("server failed", zap.Error(err))
	}

	zapLog.Info("news agent stopped gracefully")
}

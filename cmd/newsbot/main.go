package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/newsbot/internal/bot"
	"github.com/pribylovaa/newsbot/internal/config"
	"github.com/pribylovaa/newsbot/internal/generator"
	apihttp "github.com/pribylovaa/newsbot/internal/http"
	"github.com/pribylovaa/newsbot/internal/http/handlers"
	"github.com/pribylovaa/newsbot/internal/metrics"
	"github.com/pribylovaa/newsbot/internal/publisher"
	"github.com/pribylovaa/newsbot/internal/scheduler"
	"github.com/pribylovaa/newsbot/internal/service"
	"github.com/pribylovaa/newsbot/internal/sources"
	"github.com/pribylovaa/newsbot/internal/storage"
	"github.com/pribylovaa/newsbot/internal/storage/memory"
	"github.com/pribylovaa/newsbot/internal/storage/redis"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	// .env необязателен; переменные окружения процесса имеют приоритет.
	_ = godotenv.Load()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	if err := tgbotapi.SetLogger(publisher.NewBotLogger(log)); err != nil {
		log.Warn("telegram_logger_setup_failed", slog.String("err", err.Error()))
	}
	log.Info("starting newsbot", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	store, err := openStorage(rootCtx, cfg, log)
	if err != nil {
		log.Error("storage_open_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Warn("storage_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	aiClient := &http.Client{Timeout: cfg.AI.Timeout}
	gen := generator.New(generator.NewProvider(cfg.AI, aiClient), cfg.AI.Timeout, m)
	pub := publisher.New(cfg.Telegram, nil)

	svc := service.New(*cfg, service.Deps{
		Storage:   store,
		Adapters:  sources.Default(&http.Client{Timeout: cfg.Timeouts.Fetch}),
		Generator: gen,
		Publisher: pub,
		Metrics:   m,
	})
	gen.UseSwitch(svc)

	if err := svc.Bootstrap(rootCtx); err != nil {
		log.Warn("bootstrap_incomplete", slog.String("err", err.Error()))
	}
	log.Info("service_initialized",
		slog.String("ai_provider", gen.ProviderName()),
		slog.Bool("ai_available", gen.Available()),
	)

	sched := scheduler.New(svc, cfg.News.FetchInterval, cfg.News.PublishInterval)
	sched.Start(rootCtx)

	var botWG sync.WaitGroup
	if cfg.Bot.Enabled {
		api, err := publisher.NewPollingBot(cfg.Telegram, cfg.Bot.PollTimeout)
		if err != nil {
			log.Error("bot_init_failed", slog.String("err", err.Error()))
		} else {
			botWG.Add(1)
			go func() {
				defer botWG.Done()
				bot.Run(rootCtx, api, bot.New(api, svc, gen), cfg.Bot.PollTimeout)
			}()
		}
	}

	apiHandler := apihttp.NewRouter(handlers.New(svc, sched, gen), apihttp.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Request,
		Metrics: m,
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&ready) != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		if err := store.Ping(r.Context()); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		rootCancel()
		sched.Wait()
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("newsbot_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)
	rootCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	// Дожидаемся текущих задач и обработчиков бота, но не дольше shutdown-таймаута.
	done := make(chan struct{})
	go func() {
		sched.Wait()
		botWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("jobs_stopped")
	case <-shutdownCtx.Done():
		log.Warn("jobs_force_stop")
	}

	log.Info("service_stopped")
}

// openStorage выбирает хранилище по cfg.Storage.Driver.
// Недоступный Redis не мешает старту: операции вернут storage.ErrUnavailable,
// а задачи отработают вхолостую до восстановления.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn("storage_in_memory", slog.String("note", "data is lost on restart"))
		return memory.New(), nil
	}

	st, err := redis.New(cfg.Storage.RedisURL, cfg.Storage.DialTimeout, cfg.Timeouts.Store)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Storage.DialTimeout)
	defer cancel()

	if err := st.Ping(pingCtx); err != nil {
		log.Warn("redis_ping_failed", slog.String("err", err.Error()))
	} else {
		log.Info("redis_connected")
	}

	return st, nil
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

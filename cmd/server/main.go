package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"veriname/internal/audit"
	"veriname/internal/directory"
	directorymetrics "veriname/internal/directory/metrics"
	"veriname/internal/nickname"
	"veriname/internal/platform/config"
	"veriname/internal/platform/httpserver"
	"veriname/internal/platform/logger"
	"veriname/internal/platform/middleware/auth"
	platformredis "veriname/internal/platform/redis"
	"veriname/internal/scoring"
	"veriname/internal/translit"
	"veriname/internal/verify"
	"veriname/internal/verify/handler"
	verifymetrics "veriname/internal/verify/metrics"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	// Transliteration tables.
	names := translit.DefaultCommonNames()
	if cfg.CommonNamesFile != "" {
		loaded, err := translit.LoadCommonNames(cfg.CommonNamesFile)
		if err != nil {
			log.Error("load common names", "path", cfg.CommonNamesFile, "error", err)
			os.Exit(1)
		}
		names = loaded
	}
	mapper := translit.NewMapper(names)

	// Nickname store: postgres when configured, seeded memory otherwise.
	var resolver scoring.NicknameResolver
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store := nickname.NewPostgres(db)
		if err := store.EnsureSchema(context.Background()); err != nil {
			log.Error("nickname schema", "error", err)
			os.Exit(1)
		}
		resolver = store
	} else {
		store := nickname.NewInMemory()
		nickname.Seed(store)
		resolver = store
	}

	// Scoring config: file-backed for zero-downtime tuning, defaults otherwise.
	var configSource scoring.ConfigSource
	if cfg.ScoringConfig != "" {
		configSource = scoring.NewFileSource(cfg.ScoringConfig)
	} else {
		static, err := scoring.NewStaticSource(scoring.DefaultConfig())
		if err != nil {
			log.Error("scoring defaults", "error", err)
			os.Exit(1)
		}
		configSource = static
	}

	engine, err := scoring.NewEngine(configSource,
		scoring.WithNicknameResolver(resolver),
		scoring.WithTransliterator(mapper),
	)
	if err != nil {
		log.Error("scoring engine", "error", err)
		os.Exit(1)
	}

	// Directory sources. The real HTTP clients are deployed separately;
	// fixture providers keep the wiring honest in dev.
	providers := []directory.Provider{
		directory.NewStatic(scoring.SourceME, nil),
		directory.NewStatic(scoring.SourceSync, nil),
	}

	dirOpts := []directory.Option{directory.WithMetrics(directorymetrics.New())}
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		dirOpts = append(dirOpts, directory.WithCache(
			directory.NewRedisCache(redisClient.Client, cfg.DirectoryCacheTTL)))
	}

	directoryService, err := directory.NewService(providers, log, dirOpts...)
	if err != nil {
		log.Error("directory service", "error", err)
		os.Exit(1)
	}

	// Audit pipeline: Kafka when brokers are configured, structured log
	// fallback otherwise.
	var publisher audit.Publisher = audit.NewLogPublisher(log)
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic, log)
		if err != nil {
			log.Error("kafka publisher", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		publisher = kafka
	}
	auditInbox := make(chan audit.Event, 256)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go func() {
		if err := audit.NewWorker(publisher, auditInbox).Run(workerCtx); err != nil && workerCtx.Err() == nil {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	verifyService, err := verify.NewService(engine, directoryService, log,
		verify.WithMetrics(verifymetrics.New()),
		verify.WithAuditChannel(auditInbox),
	)
	if err != nil {
		log.Error("verify service", "error", err)
		os.Exit(1)
	}

	verifier := auth.NewVerifier(cfg.JWTSigningKey, "veriname")

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(verifier, log))
		handler.New(verifyService, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting veriname", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

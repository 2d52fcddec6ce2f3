package root

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"missionboard/internal/backend"
	"missionboard/internal/config"
	"missionboard/internal/engine"
	"missionboard/internal/logging"
	"missionboard/internal/metrics"
	"missionboard/internal/passport"
	"missionboard/internal/storage"
)

type app struct {
	cfg      config.Config
	log      zerolog.Logger
	store    *passport.Store
	missions *engine.Service
	metrics  *metrics.Metrics
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if apiURL != "" {
		cfg.APIBaseURL = strings.TrimRight(apiURL, "/")
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, cfg.Validate()
}

func openSlot(ctx context.Context, cfg config.Config) (passport.Slot, func(), error) {
	if cfg.Cache == config.CacheRedis {
		rs := storage.NewRedisSlots(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	}

	db, err := storage.Open(ctx, cfg.DBPath())
	if err != nil {
		return nil, nil, err
	}
	return storage.NewSlotRepo(db), func() { _ = db.Close() }, nil
}

// openApp wires config, logging, the session cache, the backend client and
// the mission board. The returned cleanup must always be called.
func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger, closeLog, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	slot, closeSlot, err := openSlot(ctx, cfg)
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	m := metrics.New()
	client := backend.New(backend.Options{
		BaseURL:        cfg.APIBaseURL,
		RegisterPath:   cfg.RegisterPath,
		AvatarEncoding: cfg.AvatarEncoding,
		Logger:         logger,
		Observer:       m,
	})
	store := passport.NewStore(ctx, client, slot, logger, passport.WithRecorder(m))

	stopMetrics := func() {}
	if cfg.MetricsAddr != "" {
		mctx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := metrics.Serve(mctx, cfg.MetricsAddr, m, logger); err != nil {
				logger.Error().Err(err).Msg("metrics server")
			}
		}()
		stopMetrics = func() {
			cancel()
			<-done
		}
	}

	a := &app{
		cfg:      cfg,
		log:      logger,
		store:    store,
		missions: engine.NewService(engine.NewSeededRegistry(time.Now()), store),
		metrics:  m,
	}
	cleanup := func() {
		stopMetrics()
		closeSlot()
		closeLog()
	}
	return a, cleanup, nil
}

// userError turns a store or backend failure into the message shown on the
// command line.
func userError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(passport.DisplayMessage(err))
}

package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socialsearch/internal/config"
	dbRedis "github.com/kailas-cloud/socialsearch/internal/db/redis"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/feature"
	socialfeature "github.com/kailas-cloud/socialsearch/internal/feature/social"
	"github.com/kailas-cloud/socialsearch/internal/hook"
	logpkg "github.com/kailas-cloud/socialsearch/internal/logger"
	"github.com/kailas-cloud/socialsearch/internal/metrics"
	contentrepo "github.com/kailas-cloud/socialsearch/internal/repository/content"
	documentrepo "github.com/kailas-cloud/socialsearch/internal/repository/document"
	searchrepo "github.com/kailas-cloud/socialsearch/internal/repository/search"
	siteindexrepo "github.com/kailas-cloud/socialsearch/internal/repository/siteindex"
	socialrepo "github.com/kailas-cloud/socialsearch/internal/repository/social"
	tenantrepo "github.com/kailas-cloud/socialsearch/internal/repository/tenant"
	healthuc "github.com/kailas-cloud/socialsearch/internal/usecase/health"
	indexuc "github.com/kailas-cloud/socialsearch/internal/usecase/index"
	searchuc "github.com/kailas-cloud/socialsearch/internal/usecase/search"
	"github.com/kailas-cloud/socialsearch/internal/version"
)

// app is the composition root shared by every subcommand.
type app struct {
	env      string
	cfg      config.Config
	logger   *zap.Logger
	store    *dbRedis.Store
	hooks    *hook.Registry
	features *feature.Registry
	tenants  *tenantrepo.Repo
	indexer  *indexuc.Service
	search   *searchuc.Service
	health   *healthuc.Service
}

func newApp(ctx context.Context) (*app, error) {
	env := envFlag
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	logger.Info("Starting socialsearch",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("federation", cfg.Federation.Strategy),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Username:   cfg.Database.Username,
		Password:   cfg.Database.Password,
		DB:         cfg.Database.DB,
		ClientName: logpkg.ServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("create database store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database")

	metrics.Register()

	prefix := cfg.Storage.KeyPrefix
	tenants := tenantrepo.New(store, prefix)
	if err := tenants.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("tenant directory: %w", err)
	}
	siteIndexes := siteindexrepo.New(store)
	socials := socialrepo.New(store, prefix)
	namer := indexuc.NewNamer(prefix)

	hooks := hook.New(logger)
	indexer := indexuc.New(
		hooks, namer, siteIndexes,
		contentrepo.New(store, prefix), socials, documentrepo.New(store),
		indexuc.Config{
			DefaultShards: cfg.Engine.DefaultShards,
			Taxonomies:    cfg.Indexing.Taxonomies,
			BatchSize:     cfg.Indexing.BatchSize,
			Retries:       cfg.Indexing.Retries,
			RetryBackoff:  time.Duration(cfg.Indexing.RetryBackoffMS) * time.Millisecond,
		},
		logger.Named("index"),
	)

	engine := searchrepo.New(store, siteIndexes, searchrepo.Config{
		IndexPrefix:    namer.Prefix(),
		ExcludeIndexes: []string{tenants.DirectoryIndex()},
		MaxShards:      cfg.Engine.MaxShardsPerRequest,
		DefaultShards:  cfg.Engine.DefaultShards,
	}, logger.Named("engine"))

	a := &app{
		env:      env,
		cfg:      cfg,
		logger:   logger,
		store:    store,
		hooks:    hooks,
		features: feature.NewRegistry(hooks, logger.Named("feature")),
		tenants:  tenants,
		indexer:  indexer,
		search:   searchuc.New(hooks, engine, tenants, namer),
		health:   healthuc.New(store, store, tenants.DirectoryIndex(), socials),
	}

	var extra []kind.Kind
	if cfg.Social.ExtraKinds != nil {
		extra = kind.Parse(cfg.Social.ExtraKinds)
	}
	social := socialfeature.New(socialfeature.Options{
		Strategy:   socialfeature.Strategy(cfg.Federation.Strategy),
		RootTenant: cfg.Federation.RootTenant,
		PageSize:   cfg.Federation.PageSize,
		ExtraKinds: extra,
	}, socialfeature.Deps{
		Tenants: tenants,
		Namer:   namer,
		Indexer: indexer,
		Probe:   socials,
	}, logger.Named("social"))
	if err := a.features.Register(social); err != nil {
		a.close()
		return nil, err
	}

	if cfg.Social.Enabled {
		st, err := a.features.Activate(ctx, socialfeature.Slug)
		if err != nil {
			a.close()
			return nil, err
		}
		if !st.Satisfied() {
			logger.Warn("Social feature not activated", zap.String("reason", st.Message))
		}
	}

	return a, nil
}

func (a *app) close() {
	a.store.Close()
	_ = a.logger.Sync()
}

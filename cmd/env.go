package main

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/dart-research/disclosure-cli/internal/catalog"
	"github.com/dart-research/disclosure-cli/internal/engine"
	"github.com/dart-research/disclosure-cli/internal/store"
)

// appEnv bundles the collaborators a command needs: the keyword catalog,
// the report store, and the engine wired over both.
type appEnv struct {
	Catalog *catalog.Catalog
	Store   store.ReportStore
	Engine  *engine.Engine
}

// initEnv constructs the per-process environment from config. The
// catalog load never fails; a missing definition file degrades matching.
func initEnv(ctx context.Context) (*appEnv, error) {
	cat := catalog.Load(cfg.Catalog.KeywordsPath, cfg.Catalog.IndustriesPath)

	var st store.ReportStore
	switch strings.ToLower(cfg.Store.Driver) {
	case "postgres":
		ps, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
		if err != nil {
			return nil, eris.Wrap(err, "init: open postgres store")
		}
		st = ps
	case "sqlite", "":
		ss, err := store.NewSQLite(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "init: open sqlite store")
		}
		st = ss
	default:
		return nil, eris.Errorf("init: unknown store driver %q", cfg.Store.Driver)
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "init: migrate store")
	}

	return &appEnv{
		Catalog: cat,
		Store:   st,
		Engine:  engine.New(cat, st),
	}, nil
}

func (e *appEnv) Close() {
	_ = e.Store.Close()
}

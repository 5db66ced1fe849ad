package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/google"
	"flex_reviews/internal/adapters/hostaway"
	server "flex_reviews/internal/adapters/http_server"
	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
	filestore "flex_reviews/internal/storage/file"
	mysqlstore "flex_reviews/internal/storage/mysql"
	pebblestore "flex_reviews/internal/storage/pebble"
	redisstore "flex_reviews/internal/storage/redis"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	store, closeStore, err := newApprovalStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.ApprovalBackend).Msg("approval store init failed")
	}
	if closeStore != nil {
		defer func() {
			if err := closeStore(); err != nil {
				log.Error().Err(err).Msg("approval store close failed")
			}
		}()
	}

	// deps
	source := hostaway.New(cfg.HostawayBase, cfg.HostawayAccountID, cfg.HostawayAPIKey, cfg.ProviderRPS)
	places := google.New(cfg.GoogleBase, cfg.GooglePlacesKey, cfg.ProviderRPS)

	q := app.NewQueryService(source, store)
	p := app.NewPlaceService(places)
	c := app.NewCurationService(store)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, P: p, C: c})

	log.Info().Str("addr", cfg.HTTPAddr).Str("approvals", cfg.ApprovalBackend).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// newApprovalStore picks the overlay backend. The file backend keeps the
// original single-JSON-object contract; the others trade it for a real KV
// store with the same last-write-wins semantics.
func newApprovalStore(cfg shared.Config) (domain.ApprovalStore, func() error, error) {
	switch cfg.ApprovalBackend {
	case "redis":
		return redisstore.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB), nil, nil
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			return nil, nil, err
		}
		st := mysqlstore.New(db)
		if err := st.EnsureSchema(context.Background()); err != nil {
			return nil, nil, err
		}
		return st, db.Close, nil
	case "pebble":
		st, err := pebblestore.Open(cfg.PebbleDir)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	default:
		return filestore.New(cfg.ApprovalPath), nil, nil
	}
}

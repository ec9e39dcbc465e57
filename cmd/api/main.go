package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "hotel_pricer/internal/adapters/http_server"
	"hotel_pricer/internal/adapters/observability"
	"hotel_pricer/internal/adapters/rakuten"
	"hotel_pricer/internal/app"
	"hotel_pricer/internal/shared"
	mysqlrepo "hotel_pricer/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	client, err := rakuten.New(cfg.RakutenBase, cfg.ApplicationID, cfg.RequestInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Rakuten client")
	}
	h := &server.Handlers{Q: app.NewPriceQueryService(client, client, cfg.AvoidWords)}

	// stored prices are optional
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		h.Prices = mysqlrepo.New(db)
	}

	srv := server.New(0)
	srv.Mount("/metrics", observability.MetricsHandler(observability.InitRegistry()))
	srv.MountHandlers(h)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_pricer/internal/adapters/csvio"
	"hotel_pricer/internal/adapters/observability"
	"hotel_pricer/internal/adapters/rakuten"
	"hotel_pricer/internal/app"
	"hotel_pricer/internal/shared"
	mysqlrepo "hotel_pricer/internal/storage/mysql"
)

var CLI struct {
	Hotels string `help:"CSV of hotel numbers (first column, header row skipped)." type:"existingfile" default:"hotel.csv"`
	Dates  string `help:"CSV of stay dates (first column, one per row)." type:"existingfile" default:"date.csv"`
	Out    string `help:"Output CSV path." type:"path" default:"price.csv"`
	Mode   string `help:"Report layout." enum:"pair,category" default:"pair"`
	Store  bool   `help:"Also store the cells in MySQL (MYSQL_DSN)."`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("pricer"),
		kong.Description("Cheapest eligible Rakuten Travel plan per hotel and night."),
		kong.UsageOnError(),
	)

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	observability.Serve(cfg.MetricsAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode, err := app.ParseReportMode(CLI.Mode)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid mode")
	}
	hotelNos, err := csvio.ReadHotelNos(CLI.Hotels)
	if err != nil {
		log.Fatal().Err(err).Msg("read hotels failed")
	}
	dates, err := csvio.ReadStayDates(CLI.Dates)
	if err != nil {
		log.Fatal().Err(err).Msg("read dates failed")
	}

	client, err := rakuten.New(cfg.RakutenBase, cfg.ApplicationID, cfg.RequestInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Rakuten client")
	}

	var repo *mysqlrepo.Repo
	if CLI.Store {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		repo = mysqlrepo.New(db)
	}

	log.Info().
		Int("hotels", len(hotelNos)).
		Int("dates", len(dates)).
		Str("mode", string(mode)).
		Dur("interval", cfg.RequestInterval).
		Msg("pricer starting")

	svc := app.NewPriceQueryService(client, client, cfg.AvoidWords)
	rep := svc.Run(ctx, hotelNos, dates, mode)

	if err := writeReport(ctx, CLI.Out, rep.Rows); err != nil {
		if errors.Is(err, errInterrupted) {
			log.Warn().Str("path", CLI.Out).Msg("run interrupted; nothing written or stored")
			os.Exit(130)
		}
		log.Fatal().Err(err).Msg("write report failed")
	}
	log.Info().Str("path", CLI.Out).Int("rows", len(rep.Rows)).Msg("report written")

	if repo != nil {
		runID := uuid.NewString()
		if err := repo.SaveCells(ctx, runID, rep.Cells); err != nil {
			log.Fatal().Err(err).Str("run_id", runID).Msg("store cells failed")
		}
		log.Info().Str("run_id", runID).Int("cells", len(rep.Cells)).Msg("cells stored")
	}
}

var errInterrupted = errors.New("run interrupted")

// writeReport refuses to write once ctx is done: a cancelled run leaves
// every remaining cell absent, which would read as a table of zero prices.
func writeReport(ctx context.Context, path string, rows [][]string) error {
	if ctx.Err() != nil {
		return errInterrupted
	}
	return csvio.WriteTable(path, rows)
}

// Package pointapi provides the API to manage user point balances.
package main

import (
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/go-petr/point-bank/cmd/httpserver"
	"github.com/go-petr/point-bank/internal/middleware"
	"github.com/go-petr/point-bank/pkg/configpkg"
	"github.com/go-petr/point-bank/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	var db *sql.DB

	if config.DBSource != "" {
		db, err = dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot connect to database")
		}
	} else {
		logger.Info().Msg("DB_SOURCE not set, using in-memory stores")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("POINT API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

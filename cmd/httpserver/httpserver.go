// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/point-bank/internal/balancedelivery"
	"github.com/go-petr/point-bank/internal/balancerepo"
	"github.com/go-petr/point-bank/internal/balanceservice"
	"github.com/go-petr/point-bank/internal/ledgerdelivery"
	"github.com/go-petr/point-bank/internal/ledgerrepo"
	"github.com/go-petr/point-bank/internal/ledgerservice"
	"github.com/go-petr/point-bank/internal/middleware"
	"github.com/go-petr/point-bank/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration. DB is nil
// when the in-memory stores are used.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes. A nil conn
// selects the in-memory stores; otherwise repos run against Postgres.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	var (
		balanceRepo balanceservice.BalanceRepo
		appendRepo  balanceservice.LedgerRepo
		listRepo    ledgerservice.Repo
	)

	if conn != nil {
		balanceRepo = balancerepo.NewRepoPGS(conn)
		ledger := ledgerrepo.NewRepoPGS(conn)
		appendRepo, listRepo = ledger, ledger
	} else {
		balanceRepo = balancerepo.NewRepoMem()
		ledger := ledgerrepo.NewRepoMem()
		appendRepo, listRepo = ledger, ledger
	}

	balanceService := balanceservice.New(config.MaxBalance, balanceRepo, appendRepo)
	ledgerService := ledgerservice.New(listRepo)

	balanceHandler := balancedelivery.NewHandler(balanceService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/points/:id", balanceHandler.Get)
	engine.PATCH("/points/:id/charge", balanceHandler.Charge)
	engine.PATCH("/points/:id/deduct", balanceHandler.Deduct)
	engine.GET("/points/:id/history", ledgerHandler.List)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}

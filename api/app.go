package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	handlers "github.com/akashkatakam/vehicle-sales-system/api/handlers"
	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type application struct {
	Config   models.Config
	Handlers *handlers.HandlerList
	infoLog  *log.Logger
	errorLog *log.Logger
}

// Serve wires the handlers off the pool and runs the HTTP server.
func Serve(cfg models.Config, db *pgxpool.Pool, infoLog, errorLog *log.Logger) error {
	app := &application{
		Config:   cfg,
		Handlers: handlers.NewHandlerList(db, cfg, infoLog, errorLog),
		infoLog:  infoLog,
		errorLog: errorLog,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      app.routes(),
		ErrorLog:     errorLog,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	infoLog.Printf("starting %s server on port %d", cfg.Env, cfg.Port)
	return srv.ListenAndServe()
}

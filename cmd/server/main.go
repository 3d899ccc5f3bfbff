package main

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"household-ledger/internal/config"
	"household-ledger/internal/events/kafka"
	"household-ledger/internal/events/zaplog"
	"household-ledger/internal/interfaces"
	"household-ledger/internal/ledger"
	"household-ledger/internal/platform/logger"
	"household-ledger/internal/server"
	"household-ledger/internal/storage/memory"
	"household-ledger/internal/storage/postgres"
)

func main() {
	cfg := config.Load()
	appLogger := logger.NewLogger(cfg.AppEnv)
	defer appLogger.Sync()

	var store interfaces.LedgerStore
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("opening database: %v", err)
		}
		if err := db.Ping(); err != nil {
			log.Fatalf("connecting to database: %v", err)
		}
		defer db.Close()
		store = postgres.NewPostgresLedgerStore(db)
		appLogger.Info("using postgres ledger store")
	} else {
		store = memory.NewMemoryLedgerStore()
		appLogger.Warn("DATABASE_URL not set, using in-memory ledger store")
	}

	var audit interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer publisher.Close()
		audit = publisher
		appLogger.Info("audit events via kafka", zap.Strings("brokers", cfg.KafkaBrokers))
	} else {
		audit = zaplog.NewPublisher(appLogger)
		appLogger.Info("audit events via log stream")
	}

	writer := ledger.NewWriter(store, audit, interfaces.StaticWritePolicy(cfg.LedgerWriteEnabled), appLogger)
	if !cfg.LedgerWriteEnabled {
		appLogger.Warn("ledger write gate is CLOSED, all writes will be refused")
	}

	ledgerHandler := server.NewLedgerHandler(writer, store)
	srv := server.NewServer(appLogger, cfg.Port, cfg.AppEnv, ledgerHandler)

	if err := srv.Run(); err != nil {
		appLogger.Fatal("server startup failed", zap.Error(err))
	}
}

package main

import (
	"app/internal/config"
	"app/internal/infra/db"
	"app/internal/logging"
	"app/internal/server"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .envは無くてもよい（環境変数が優先）
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}
	if err := db.SeedProducts(gormDB); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}

	// Server起動
	e := server.New(cfg, logger, gormDB)

	addr := ":" + cfg.Port
	if cfg.Port != "" && cfg.Port[0] == ':' {
		addr = cfg.Port
	}

	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

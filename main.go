package main

import (
	"database/sql"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-cropadvisor/config"
	"go-cropadvisor/ml"
	"go-cropadvisor/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.Server.GinMode)

	// 模型在启动时加载一次，之后只读
	pipeline, err := ml.LoadPipeline(cfg.Model.ModelPath, cfg.Model.ScalerPath)
	if err != nil {
		logger.Fatal("Failed to load model artifacts",
			zap.String("model", cfg.Model.ModelPath),
			zap.String("scaler", cfg.Model.ScalerPath),
			zap.Error(err))
	}

	var db *sql.DB
	if cfg.Database.Enabled {
		db, err = config.InitDB(cfg.Database, logger)
		if err != nil {
			logger.Fatal("Failed to initialise database", zap.Error(err))
		}
		defer db.Close()
	} else {
		logger.Info("Database disabled, prediction history will not be stored")
	}

	r, err := routes.SetupRouter(db, pipeline, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to set up router", zap.Error(err))
	}

	logger.Info("Server listening", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

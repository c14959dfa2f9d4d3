package main

import (
	"log"

	_ "taskboard/docs"
	"taskboard/internal/config"
	"taskboard/internal/logger"
	"taskboard/internal/server"

	"go.uber.org/zap"
)

// @title           Taskboard API
// @version         1.0
// @description     Users, columns and cards for a kanban board.

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Users
// @tag.description Registration, login and account changes

// @tag.name Columns
// @tag.description Columns keyed by owner

// @tag.name Cards
// @tag.description Cards within a column

// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	s, err := server.Init(cfg, zl)
	if err != nil {
		zl.Fatal("Server initialization failed", zap.Error(err))
	}

	if err := s.Run(); err != nil {
		zl.Error("Server stopped with error", zap.Error(err))
	}
}

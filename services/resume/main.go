// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AleutianAI/roboresume/pkg/logging"
	"github.com/AleutianAI/roboresume/services/resume/observability"
	"github.com/AleutianAI/roboresume/services/resume/routes"
	"github.com/AleutianAI/roboresume/services/resume/session"
	"github.com/AleutianAI/roboresume/services/resume/storage"
	"github.com/AleutianAI/roboresume/services/resume/storage/badgerdb"
	"github.com/AleutianAI/roboresume/services/resume/workflow"
)

func main() {
	port := os.Getenv("RESUME_PORT")
	if port == "" {
		port = "12300"
	}

	lg := logging.New(logging.Config{
		Level:   logging.LevelInfo,
		LogDir:  os.Getenv("RESUME_LOG_DIR"),
		Service: "resume",
	})
	defer lg.Close()
	logger := lg.Slog()
	slog.SetDefault(logger)

	var store storage.Store
	if os.Getenv("RESUME_DB_IN_MEMORY") == "true" {
		slog.Info("RESUME_DB_IN_MEMORY is set, running with ephemeral storage")
		db, err := badgerdb.OpenInMemory()
		if err != nil {
			log.Fatalf("FATAL: could not open in-memory database: %v", err)
		}
		defer db.Close()
		store = storage.NewBadgerStore(db)
	} else {
		dbPath := os.Getenv("RESUME_DB_PATH")
		if dbPath == "" {
			dbPath = "./data/resume"
			slog.Warn("RESUME_DB_PATH is not set, defaulting to ./data/resume")
		}
		cfg := badgerdb.DefaultConfig()
		cfg.Path = dbPath
		cfg.Logger = logger
		db, err := badgerdb.Open(cfg)
		if err != nil {
			log.Fatalf("FATAL: could not open database at %s: %v", dbPath, err)
		}
		defer db.Close()

		gc, err := badgerdb.NewGCRunner(db, cfg.GCInterval, cfg.GCDiscardRatio, logger)
		if err != nil {
			log.Fatalf("FATAL: could not create database GC runner: %v", err)
		}
		gc.Start()
		defer gc.Stop()

		store = storage.NewBadgerStore(db)
	}

	metrics := observability.New(prometheus.DefaultRegisterer)
	sessions := session.NewManager()
	wf := workflow.NewController(store, sessions, metrics, logger)

	router := gin.Default()
	routes.SetupRoutes(router, wf, sessions)

	slog.Info("starting resume service", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("FATAL: server exited: %v", err)
	}
}

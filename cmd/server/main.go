package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jengzang/trajectory-classifier/internal/api"
	"github.com/jengzang/trajectory-classifier/internal/config"
	"github.com/jengzang/trajectory-classifier/internal/database"
	"github.com/jengzang/trajectory-classifier/internal/repository"
	"github.com/jengzang/trajectory-classifier/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化数据库
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo := repository.NewTrajectoryRepository(database.GetDB())
	svc := service.NewClassificationService(repo)

	if cfg.DataFile != "" {
		if err := svc.ImportFile(ctx, cfg.DataFile); err != nil {
			log.Fatal("Failed to import trajectory file:", err)
		}
	}
	if err := svc.Reload(ctx); err != nil {
		log.Fatal("Failed to load trajectories:", err)
	}

	// 初始化路由
	router, stopRouter := api.SetupRouter(cfg, svc)
	defer stopRouter()

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Failed to start server:", err)
	}
	log.Printf("Server stopped")
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	httphandler "github.com/ogurasousui/poolcalendar/internal/adapters/http/handler"
	"github.com/ogurasousui/poolcalendar/internal/app"
	"github.com/ogurasousui/poolcalendar/internal/platform/config"
	pg "github.com/ogurasousui/poolcalendar/internal/platform/db/postgres"
	"github.com/ogurasousui/poolcalendar/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.Load(config.ResolvePath(""))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	svcs := app.NewServices(cfg, dbPool)
	h := httphandler.NewHandler(svcs.Feed, svcs.Earnings, svcs.Profiles)

	srv := server.New(server.Options{
		HTTPAddr:     cfg.Server.ListenAddr,
		GRPCAddr:     cfg.Server.GRPCListenAddr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, h.Routes())

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Printf("server stopped")
}

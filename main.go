package main

import (
	"Campus/internal/server"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func configurationPath() string {
	if path := os.Getenv("CAMPUS_CONFIG"); path != "" {
		return path
	}
	return "campus.yaml"
}

func main() {
	srv, cleanup, err := InitializeServer()
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	defer cleanup()

	if err := srv.JanitorService.StartCleanCycle(); err != nil {
		srv.LogService.Log.WithError(err).Error("clean job not scheduled")
	}
	defer srv.JanitorService.StopClean()

	app := server.NewApp(srv)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		srv.LogService.Log.Info("shutting down")
		_ = app.Shutdown()
	}()

	srv.LogService.Log.WithField("backend", srv.Configuration.Database.Backend).Info("starting campus")
	if err := app.Listen(fmt.Sprintf(":%d", srv.Configuration.Server.Port)); err != nil {
		srv.LogService.Log.Fatalf("Failed to start server: %v", err)
	}
}

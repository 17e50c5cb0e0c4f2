package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"petcare-companion/internal/app"
	"petcare-companion/internal/config"
)

// @title PetCare Companion gateway
// @version 1.0
// @description Pantallas de PetCare (feed, mascotas, adopciones, finanzas, red vecinal, perfil) sobre el backend REST.
// @BasePath /
func main() {
	configPath := flag.String("config", "", "path to the YAML config (default $PETCARE_CONFIG)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "petcare-api: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := app.NewLogger(cfg, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx, cfg.Server.Addr)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/JayR61/congregation-connect/internal/app"
	"github.com/JayR61/congregation-connect/internal/cli"
	"github.com/JayR61/congregation-connect/pkg/config"
	"github.com/JayR61/congregation-connect/pkg/logger"
)

// @title Congregation Connect API
// @version 1.0.0
// @description Church programme management: programmes, attendance, reminders, statistics and exports
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	root := cli.NewRootCmd(func() (*app.App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		logr, err := logger.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to init logger: %w", err)
		}
		return app.New(cfg, logr)
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

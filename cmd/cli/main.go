package main

import (
	"context"
	"log"
	"os"

	"github.com/minaorangina/dreidel/config"
	"github.com/minaorangina/dreidel/engine"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		log.Fatal(err.Error())
	}

	ctrl := engine.NewController(engine.ControllerOpts{
		GameID:  "local",
		Timings: cfg.Timings(),
		Logger:  logger.WithField("mode", "cli"),
	})
	defer ctrl.Close()

	if err := engine.NewTerminal(ctrl, os.Stdin, os.Stdout).Play(context.Background()); err != nil {
		log.Fatal(err.Error())
	}
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/jotpadhq/jotpad/internal/cli"
)

func main() {
	cfg := cli.LoadConfig()

	app, err := cli.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	defer app.Close()

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("jotpad: %v", err)
	}
}

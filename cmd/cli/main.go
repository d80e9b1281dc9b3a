package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/moviedeck/internal/client/cli"
	"github.com/dmitrijs2005/moviedeck/internal/client/config"
)

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	app.Run(ctx)
}

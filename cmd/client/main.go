package main

import (
	"context"
	"log"

	"github.com/todovault/todovault/internal/client/cli"
	"github.com/todovault/todovault/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}

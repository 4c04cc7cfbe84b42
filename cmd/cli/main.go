package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/dramahub/internal/client/cli"
	"github.com/dmitrijs2005/dramahub/internal/client/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	cli.NewApp(cfg).Run(ctx)

}

package main

import (
	"context"
	"log"
	"os"

	"github.com/focusflow/focusflow/internal/buildinfo"
	"github.com/focusflow/focusflow/internal/cli"
	"github.com/focusflow/focusflow/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}

package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophdiary/internal/buildinfo"
	"github.com/dmitrijs2005/gophdiary/internal/config"
	"github.com/dmitrijs2005/gophdiary/internal/server"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	if err := run(ctx, config.LoadConfig()); err != nil {
		log.Fatalf("%v", err)
	}

}

// run blocks until the server stops. Startup failures are returned so the
// process can exit non-zero.
func run(ctx context.Context, cfg *config.Config) error {
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		return err
	}

	app.Run(ctx)
	return nil
}

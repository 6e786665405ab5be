// Command server runs the GrowFlow REST API together with its gRPC health
// endpoint.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/growflow/internal/server"
	"github.com/dmitrijs2005/growflow/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "growflow: %v\n", err)
		os.Exit(1)
	}

	app.Run(ctx)
}

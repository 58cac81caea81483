// Command cotco-backend runs the COTCO content and catalog API server.
//
// All configuration is handled through WAFFLE's config system: config files,
// COTCO_-prefixed environment variables, and command-line flags. See
// internal/app/bootstrap for the available keys.
package main

import (
	"context"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}

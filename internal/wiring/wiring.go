// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/cdolfi/explorer/internal/adapters/backend"
	_ "github.com/cdolfi/explorer/internal/adapters/config"
	_ "github.com/cdolfi/explorer/internal/adapters/logger"
	_ "github.com/cdolfi/explorer/internal/adapters/metrics"
	_ "github.com/cdolfi/explorer/internal/adapters/redisclient"
	_ "github.com/cdolfi/explorer/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/cdolfi/explorer/internal/app"
	_ "github.com/cdolfi/explorer/internal/engine/await"
	_ "github.com/cdolfi/explorer/internal/engine/dispatcher"
	_ "github.com/cdolfi/explorer/internal/engine/query"
	_ "github.com/cdolfi/explorer/internal/engine/viz"
	_ "github.com/cdolfi/explorer/internal/engine/worker"
)

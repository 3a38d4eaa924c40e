package tools

import (
	"github.com/usestring/wiretype-mcp/internal/config"
	"github.com/usestring/wiretype-mcp/internal/query"
	"github.com/usestring/wiretype-mcp/internal/routes"
	"github.com/usestring/wiretype-mcp/pkg/client"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Client    *client.Client
	Store     *routes.Store
	Refresher *routes.Refresher
	Query     *query.Engine
	Config    *config.Config
}

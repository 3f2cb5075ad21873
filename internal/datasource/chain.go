package datasource

import (
	"context"
	"fmt"
	"strings"

	"colsweep/pkg/errors"
)

// Chain tries a list of connection configurations in order and settles
// on the first one that answers a ping. It replaces ad hoc per-driver
// fallback loops with one configurable connection strategy.
type Chain struct {
	configs []Config
}

// NewChain creates a connection chain over the given configurations.
func NewChain(configs ...Config) *Chain {
	return &Chain{configs: configs}
}

// Connect returns a connected service for the first configuration that
// works. If every attempt fails the error describes each one; a dead
// connection is never silently reported as an empty result.
func (c *Chain) Connect(ctx context.Context) (*Service, error) {
	if len(c.configs) == 0 {
		return nil, errors.New(errors.ErrCodeConfigMissing, "No database connections configured").
			WithSuggestions("Run 'colsweep setup' to configure a connection")
	}

	var attempts []string
	for _, cfg := range c.configs {
		svc, err := NewService(cfg)
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s (%s): %v", cfg.Name, cfg.Driver, err))
			continue
		}
		if err := svc.Connect(ctx); err != nil {
			attempts = append(attempts, fmt.Sprintf("%s (%s): %v", cfg.Name, cfg.Driver, err))
			continue
		}
		return svc, nil
	}

	return nil, errors.New(errors.ErrCodeConnectionFailed,
		fmt.Sprintf("All %d configured connections failed", len(c.configs))).
		WithContext("attempts", strings.Join(attempts, "; ")).
		WithSuggestions(
			"Check host, port, and credentials for each connection",
			"Verify the database server is reachable",
		)
}

package cmd

import (
	"context"

	"chirper/internal/ai"
	"chirper/internal/chirper"
	"chirper/internal/config"
	"chirper/internal/pool"
	"chirper/internal/redisclient"
	"chirper/internal/resolver"
	"chirper/internal/storage"
)

// buildResolver wires file and redis loaders plus the optional AI client
// into the template resolver. The returned func closes the redis client.
func buildResolver(ctx context.Context, cfg config.Config, creds config.Credentials) (*resolver.Resolver, func(), error) {
	rdb := redisclient.New(cfg.Redis)
	loader := pool.Router{
		Default: pool.FileLoader{Dir: cfg.Chirper.DataDir},
		Schemes: map[string]pool.Loader{storage.Scheme: storage.NewRedisLists(rdb)},
	}
	deps := chirper.Deps{Loader: loader, AIModel: cfg.OpenAI.Model}
	if creds.OpenAIAPIKey != "" {
		client, err := ai.NewClient(ai.Config{APIKey: creds.OpenAIAPIKey, BaseURL: cfg.OpenAI.BaseURL})
		if err != nil {
			rdb.Close()
			return nil, nil, err
		}
		deps.AI = client
	}
	r, err := chirper.Build(ctx, cfg, deps)
	if err != nil {
		rdb.Close()
		return nil, nil, err
	}
	return r, func() { _ = rdb.Close() }, nil
}

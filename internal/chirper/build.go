package chirper

import (
	"context"
	"fmt"

	"chirper/internal/ai"
	"chirper/internal/config"
	"chirper/internal/pool"
	"chirper/internal/resolver"
)

// Deps are the collaborators Build wires into the resolver tree.
type Deps struct {
	Loader pool.Loader
	Rand   pool.Rand
	// AI backs placeholders that declare a prompt. Nil leaves those
	// placeholders to their pool, which may be empty.
	AI      ai.Completer
	AIModel string
}

// Build assembles the template resolver described by cfg. Placeholders are
// processed in config order; one with its own placeholders becomes a
// nested resolver whose pool holds templates.
func Build(ctx context.Context, cfg config.Config, d Deps) (*resolver.Resolver, error) {
	if d.Loader == nil {
		d.Loader = pool.FileLoader{Dir: cfg.Chirper.DataDir}
	}
	templates := pool.Load(ctx, d.Loader, "templates", cfg.Templates.Source, cfg.Templates.Items, d.Rand)
	return buildResolver(ctx, templates, cfg.Placeholders, d)
}

func buildResolver(ctx context.Context, templates pool.Source, ps []config.PlaceholderConfig, d Deps) (*resolver.Resolver, error) {
	subs := make([]resolver.Substitution, 0, len(ps))
	for _, p := range ps {
		src, err := buildSource(ctx, p, d)
		if err != nil {
			return nil, err
		}
		subs = append(subs, resolver.Substitution{Key: p.Key, Source: src})
	}
	return resolver.New(templates, subs...)
}

func buildSource(ctx context.Context, p config.PlaceholderConfig, d Deps) (pool.Source, error) {
	if p.Prompt != "" && d.AI != nil {
		return ai.NewGenerator(d.AI, d.AIModel, p.Prompt), nil
	}
	pc := p.Pool()
	items := pool.Load(ctx, d.Loader, p.Key, pc.Source, pc.Items, d.Rand)
	if len(p.Placeholders) == 0 {
		return items, nil
	}
	nested, err := buildResolver(ctx, items, p.Placeholders, d)
	if err != nil {
		return nil, fmt.Errorf("placeholder %s: %w", p.Key, err)
	}
	return nested, nil
}

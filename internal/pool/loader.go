package pool

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrSourceNotFound is returned by loaders when an identifier does not exist.
var ErrSourceNotFound = errors.New("source not found")

// Loader reads an ordered list of strings for a source identifier.
type Loader interface {
	Load(ctx context.Context, id string) ([]string, error)
}

// LoaderFunc adapts a plain function to Loader.
type LoaderFunc func(ctx context.Context, id string) ([]string, error)

func (f LoaderFunc) Load(ctx context.Context, id string) ([]string, error) { return f(ctx, id) }

// FileLoader reads pools from disk. Plain files hold one entry per line;
// .yaml and .yml files hold a sequence of strings. Relative paths are
// resolved against Dir when it is set.
type FileLoader struct {
	Dir string
}

func (l FileLoader) Load(ctx context.Context, id string) ([]string, error) {
	path := id
	if l.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(l.Dir, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var items []string
		if err := yaml.Unmarshal(b, &items); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return items, nil
	default:
		return splitLines(b), nil
	}
}

func splitLines(b []byte) []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Router dispatches identifiers of the form "scheme:rest" to the loader
// registered for scheme. Anything else goes to Default.
type Router struct {
	Default Loader
	Schemes map[string]Loader
}

func (r Router) Load(ctx context.Context, id string) ([]string, error) {
	if scheme, rest, ok := strings.Cut(id, ":"); ok {
		if l, found := r.Schemes[strings.ToLower(scheme)]; found {
			return l.Load(ctx, rest)
		}
	}
	if r.Default == nil {
		return nil, fmt.Errorf("%w: no loader for %s", ErrSourceNotFound, id)
	}
	return r.Default.Load(ctx, id)
}

// Load builds a pool from source when set, otherwise from items. A source
// that fails to load is logged and the pool falls back to items.
func Load(ctx context.Context, l Loader, name, source string, items []string, rnd Rand) *Pool {
	if source == "" {
		return New(name, items, rnd)
	}
	if len(items) > 0 {
		slog.Warn("pool: both source and items given, source takes precedence", "pool", name, "source", source)
	}
	loaded, err := l.Load(ctx, source)
	if err != nil {
		slog.Warn("pool: could not load source", "pool", name, "source", source, "error", err)
		return New(name, items, rnd)
	}
	return New(name, loaded, rnd)
}

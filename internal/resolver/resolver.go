package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"chirper/internal/pool"
)

// ErrDuplicateKey is returned when a placeholder key is registered twice.
var ErrDuplicateKey = errors.New("duplicate placeholder key")

// Substitution binds a literal placeholder, e.g. "<adjective>", to the
// source its replacements are drawn from.
type Substitution struct {
	Key    string
	Source pool.Source
}

// Resolver draws a template from its own pool and fills its placeholders.
// Keys are processed in the order they were given.
type Resolver struct {
	templates pool.Source
	subs      []Substitution
}

// New returns a resolver over templates. Keys must be non-empty and unique.
func New(templates pool.Source, subs ...Substitution) (*Resolver, error) {
	seen := make(map[string]struct{}, len(subs))
	for _, s := range subs {
		if s.Key == "" {
			return nil, errors.New("empty placeholder key")
		}
		if s.Source == nil {
			return nil, fmt.Errorf("placeholder %s: nil source", s.Key)
		}
		if _, ok := seen[s.Key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, s.Key)
		}
		seen[s.Key] = struct{}{}
	}
	cp := make([]Substitution, len(subs))
	copy(cp, subs)
	return &Resolver{templates: templates, subs: cp}, nil
}

// Keys returns the placeholder keys in processing order.
func (r *Resolver) Keys() []string {
	out := make([]string, len(r.subs))
	for i, s := range r.subs {
		out[i] = s.Key
	}
	return out
}

// Draw renders one message, so a Resolver can itself back a placeholder.
func (r *Resolver) Draw(ctx context.Context) string { return r.Render(ctx) }

// Render draws a template and substitutes every placeholder occurrence.
func (r *Resolver) Render(ctx context.Context) string {
	out := r.templates.Draw(ctx)
	if out == "" || len(r.subs) == 0 {
		return out
	}
	for _, s := range r.subs {
		out = substitute(ctx, out, s)
	}
	return out
}

type span struct{ start, end int }

// substitute replaces every occurrence of s.Key present in tmpl. Spans are
// taken from tmpl once, so inserted text is never re-scanned.
func substitute(ctx context.Context, tmpl string, s Substitution) string {
	spans := findAll(tmpl, s.Key)
	if len(spans) == 0 {
		return tmpl
	}
	// Draw right to left so draw order matches in-place splicing.
	repl := make([]string, len(spans))
	for i := len(spans) - 1; i >= 0; i-- {
		v := s.Source.Draw(ctx)
		if startsSentence(tmpl, spans[i].start) {
			v = capitalize(v)
		}
		repl[i] = v
	}
	var b strings.Builder
	b.Grow(len(tmpl))
	last := 0
	for i, sp := range spans {
		b.WriteString(tmpl[last:sp.start])
		b.WriteString(repl[i])
		last = sp.end
	}
	b.WriteString(tmpl[last:])
	return b.String()
}

func findAll(s, key string) []span {
	var out []span
	for off := 0; ; {
		i := strings.Index(s[off:], key)
		if i < 0 {
			return out
		}
		start := off + i
		out = append(out, span{start: start, end: start + len(key)})
		off = start + len(key)
	}
}

// startsSentence reports whether the text before at, ignoring trailing
// whitespace, is empty or ends with sentence punctuation.
func startsSentence(s string, at int) bool {
	before := strings.TrimRightFunc(s[:at], unicode.IsSpace)
	if before == "" {
		return true
	}
	switch before[len(before)-1] {
	case '.', ':', '!', '?':
		return true
	}
	return false
}

// capitalize title-cases the first rune and leaves the rest untouched.
func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || r == utf8.RuneError {
		return s
	}
	t := unicode.ToTitle(r)
	if t == r {
		return s
	}
	return string(t) + s[n:]
}

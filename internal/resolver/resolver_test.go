package resolver

import (
	"context"
	"errors"
	"testing"

	"chirper/internal/pool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// script hands out values in order; used to pin draw order.
type script struct {
	vals []string
	i    int
}

func (s *script) Draw(ctx context.Context) string {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func fixed(items ...string) *pool.Pool { return pool.New("test", items, nil) }

func mustNew(t *testing.T, tmpl string, subs ...Substitution) *Resolver {
	t.Helper()
	r, err := New(fixed(tmpl), subs...)
	require.NoError(t, err)
	return r
}

func TestRenderCapitalization(t *testing.T) {
	bob := fixed("bob")
	cases := []struct {
		name, tmpl, want string
	}{
		{"after period", "Hello. <x> is here", "Hello. Bob is here"},
		{"after space", "I saw <x> today", "I saw bob today"},
		{"start of string", "<x> arrived", "Bob arrived"},
		{"after colon", "Note:<x>", "Note:Bob"},
		{"after bang", "Hey!<x>", "Hey!Bob"},
		{"after question", "Who?<x>", "Who?Bob"},
		{"after comma", "Well,<x>", "Well,bob"},
		{"after bang and spaces", "Wow!  <x>", "Wow!  Bob"},
		{"after newline", "Done.\n<x>", "Done.\nBob"},
		{"leading whitespace", "  <x> waves", "  Bob waves"},
		{"mid word", "hello<x>", "hellobob"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := mustNew(t, tc.tmpl, Substitution{Key: "<x>", Source: bob})
			assert.Equal(t, tc.want, r.Render(context.Background()))
		})
	}
}

func TestCapitalizeOnlyFirstRune(t *testing.T) {
	assert.Equal(t, "Big BAD wolf", capitalize("big BAD wolf"))
	assert.Equal(t, "Already", capitalize("Already"))
	assert.Equal(t, capitalize("Éclair"), capitalize(capitalize("éclair")))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "42 things", capitalize("42 things"))
}

func TestRenderPreservesSurroundingText(t *testing.T) {
	r := mustNew(t, "a <x> b <x> c", Substitution{Key: "<x>", Source: fixed("Q")})
	assert.Equal(t, "a Q b Q c", r.Render(context.Background()))
}

func TestRenderDrawsRightToLeft(t *testing.T) {
	src := &script{vals: []string{"first", "second", "third"}}
	r := mustNew(t, "x <k> y <k> z <k>", Substitution{Key: "<k>", Source: src})
	assert.Equal(t, "x third y second z first", r.Render(context.Background()))
}

func TestRenderOccurrencesIndependent(t *testing.T) {
	r := mustNew(t, "go <x>/<x>", Substitution{Key: "<x>", Source: fixed("a", "b", "c", "d")})
	differ := false
	for i := 0; i < 200 && !differ; i++ {
		out := r.Render(context.Background())
		require.Len(t, out, 6)
		differ = out[3] != out[5]
	}
	assert.True(t, differ, "both slots always drew the same value")
}

func TestRenderDifferentLengths(t *testing.T) {
	r := mustNew(t, "<n> likes <food>. <n>!",
		Substitution{Key: "<n>", Source: &script{vals: []string{"tiny", "a very long nickname"}}},
		Substitution{Key: "<food>", Source: fixed("")},
	)
	assert.Equal(t, "A very long nickname likes . Tiny!", r.Render(context.Background()))
}

func TestRenderNoRescanOfInsertedText(t *testing.T) {
	r := mustNew(t, "say <x>", Substitution{Key: "<x>", Source: fixed("<x> again")})
	assert.Equal(t, "say <x> again", r.Render(context.Background()))
}

func TestRenderKeyOrderIsMappingOrder(t *testing.T) {
	// <a> inserts a <b> literal; since <a> runs first, <b> sees it.
	r := mustNew(t, "<a>",
		Substitution{Key: "<a>", Source: fixed("hi <b>")},
		Substitution{Key: "<b>", Source: fixed("there")},
	)
	assert.Equal(t, "Hi there", r.Render(context.Background()))

	r = mustNew(t, "<a>",
		Substitution{Key: "<b>", Source: fixed("there")},
		Substitution{Key: "<a>", Source: fixed("hi <b>")},
	)
	assert.Equal(t, "Hi <b>", r.Render(context.Background()))
}

func TestRenderNested(t *testing.T) {
	inner := mustNew(t, "my <adj> <noun>",
		Substitution{Key: "<adj>", Source: fixed("sweet")},
		Substitution{Key: "<noun>", Source: fixed("pea")},
	)
	outer := mustNew(t, "Morning, <pet>. <pet> forever",
		Substitution{Key: "<pet>", Source: inner},
	)
	assert.Equal(t, "Morning, my sweet pea. My sweet pea forever", outer.Render(context.Background()))
}

func TestRenderEmptyCases(t *testing.T) {
	ctx := context.Background()

	r, err := New(pool.New("empty", nil, nil), Substitution{Key: "<x>", Source: fixed("y")})
	require.NoError(t, err)
	assert.Equal(t, "", r.Render(ctx))

	r, err = New(fixed("plain <x> text"))
	require.NoError(t, err)
	assert.Equal(t, "plain <x> text", r.Render(ctx))

	r = mustNew(t, "missing <x> pool", Substitution{Key: "<x>", Source: pool.New("empty", nil, nil)})
	assert.Equal(t, "missing  pool", r.Render(ctx))
}

func TestNewRejectsBadMappings(t *testing.T) {
	_, err := New(fixed("t"),
		Substitution{Key: "<x>", Source: fixed("a")},
		Substitution{Key: "<x>", Source: fixed("b")},
	)
	assert.True(t, errors.Is(err, ErrDuplicateKey))

	_, err = New(fixed("t"), Substitution{Key: "", Source: fixed("a")})
	assert.Error(t, err)

	_, err = New(fixed("t"), Substitution{Key: "<x>"})
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	r := mustNew(t, "t",
		Substitution{Key: "<b>", Source: fixed("1")},
		Substitution{Key: "<a>", Source: fixed("2")},
	)
	assert.Equal(t, []string{"<b>", "<a>"}, r.Keys())
}

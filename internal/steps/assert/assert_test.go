package assertsteps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stagehand/internal/expr"
	"github.com/alexisbeaulieu97/stagehand/internal/registry"
)

func lookup(t *testing.T, name string) registry.Handler {
	t.Helper()
	r := registry.New()
	require.NoError(t, Register(r))
	h, err := r.Lookup(name)
	require.NoError(t, err)
	return h
}

func TestEqual(t *testing.T) {
	t.Parallel()

	h := lookup(t, "assert/equal")

	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
	}{
		{
			name: "equal strings",
			args: map[string]any{"left": "alice", "right": "alice"},
		},
		{
			name: "equal nested structures",
			args: map[string]any{
				"left":  map[string]any{"tags": []any{"a", "b"}},
				"right": map[string]any{"tags": []any{"a", "b"}},
			},
		},
		{
			name:    "different values",
			args:    map[string]any{"left": "alice", "right": "bob"},
			wantErr: true,
		},
		{
			name:    "missing side",
			args:    map[string]any{"left": "alice"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := h(context.Background(), &registry.Invocation{Args: tt.args})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNotEmpty(t *testing.T) {
	t.Parallel()

	h := lookup(t, "assert/not-empty")

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "non-empty string", value: "x"},
		{name: "non-empty list", value: []any{1}},
		{name: "zero number", value: 0},
		{name: "empty string", value: "", wantErr: true},
		{name: "empty list", value: []any{}, wantErr: true},
		{name: "empty mapping", value: map[string]any{}, wantErr: true},
		{name: "nil", value: nil, wantErr: true},
		{name: "absent reference", value: expr.Absent, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			args := map[string]any{"value": tt.value}
			_, err := h(context.Background(), &registry.Invocation{Args: args})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

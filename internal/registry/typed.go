package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	serrors "github.com/alexisbeaulieu97/stagehand/pkg/errors"
)

// Typed adapts a strongly-typed step function into a Handler. Resolved
// arguments are decoded into A with strict shape checking; the returned O
// is re-encoded into the engine's generic value representation.
//
// Handlers with no arguments use struct{} for A; handlers with no
// meaningful output use struct{} for O and yield an empty, still
// addressable output value.
func Typed[A, O any](fn func(ctx context.Context, inv *Invocation, args A) (O, error)) Handler {
	return func(ctx context.Context, inv *Invocation) (map[string]any, error) {
		var args A
		if err := decodeArgs(inv.Args, &args); err != nil {
			return nil, serrors.NewArgumentShapeError("", err)
		}

		out, err := fn(ctx, inv, args)
		if err != nil {
			return nil, err
		}
		return encodeOutputs(out)
	}
}

// decodeArgs maps the resolved `with` values onto the handler's argument
// struct. Unknown keys and incompatible types are shape errors.
func decodeArgs(raw map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      target,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return dec.Decode(raw)
}

// encodeOutputs converts a handler's output value into the generic
// mapping shape templates resolve against. The JSON round-trip
// normalizes nested structs into plain mappings and sequences.
func encodeOutputs(out any) (map[string]any, error) {
	if out == nil {
		return map[string]any{}, nil
	}
	if m, ok := out.(map[string]any); ok {
		return m, nil
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding step outputs: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		// Scalars and sequences cannot be addressed by field name.
		return nil, fmt.Errorf("step outputs must be a mapping, got %T", out)
	}
	return m, nil
}

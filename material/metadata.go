package material

import (
	"fmt"

	"github.com/arloliu/matlib/errs"
)

// CanonicalMetadata returns a copy of md where every number is a float64.
// Strings, booleans, nil and nested lists/maps of those are accepted.
func CanonicalMetadata(md map[string]any) (map[string]any, error) {
	if len(md) == 0 {
		return nil, nil
	}

	out := make(map[string]any, len(md))
	for k, v := range md {
		cv, err := canonicalValue(v)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q", err, k)
		}
		out[k] = cv
	}

	return out, nil
}

func canonicalValue(v any) (any, error) {
	switch t := v.(type) {
	case nil, string, bool, float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint:
		return float64(t), nil
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			ce, err := canonicalValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = ce
		}

		return out, nil
	case map[string]any:
		return CanonicalMetadata(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string key %v", errs.ErrInvalidMetadata, k)
			}
			ce, err := canonicalValue(e)
			if err != nil {
				return nil, err
			}
			out[ks] = ce
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported value type %T", errs.ErrInvalidMetadata, v)
	}
}

func cloneMetadata(md map[string]any) map[string]any {
	if md == nil {
		return nil
	}
	out := make(map[string]any, len(md))
	for k, v := range md {
		out[k] = cloneValue(v)
	}

	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}

		return out
	case map[string]any:
		return cloneMetadata(t)
	default:
		return v
	}
}

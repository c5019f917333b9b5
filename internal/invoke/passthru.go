package invoke

import (
	"encoding/json"
	"fmt"
)

// Bound enforces the pass-thru serialization depth on the wrapper side.
// Composite values nested deeper than depth are flattened into their
// compact JSON rendering, mirroring what the framework's own bounded
// serializer does to values beyond the requested depth.
func Bound(v any, depth int) any {
	switch val := v.(type) {
	case map[string]any:
		if depth <= 0 {
			return flatten(val)
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Bound(item, depth-1)
		}
		return out
	case []any:
		if depth <= 0 {
			return flatten(val)
		}
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Bound(item, depth-1)
		}
		return out
	default:
		return v
	}
}

func flatten(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

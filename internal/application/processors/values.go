package processors

import (
	"encoding/json"
	"errors"
	"fmt"
)

func isString(v any) error {
	if _, ok := v.(string); !ok {
		return fmt.Errorf("expected a string, got %T", v)
	}
	return nil
}

func isBool(v any) error {
	if _, ok := v.(bool); !ok {
		return fmt.Errorf("expected true or false, got %T", v)
	}
	return nil
}

func isList(v any) error {
	if _, ok := v.([]any); !ok {
		return fmt.Errorf("expected a list, got %T", v)
	}
	return nil
}

func isMap(v any) error {
	if _, ok := v.(map[string]any); !ok {
		return fmt.Errorf("expected a mapping, got %T", v)
	}
	return nil
}

func isBoolOrMap(v any) error {
	if isBool(v) == nil || isMap(v) == nil {
		return nil
	}
	return fmt.Errorf("expected true, false or a mapping, got %T", v)
}

func isBoolOrNonNegativeNumber(v any) error {
	if isBool(v) == nil {
		return nil
	}
	n, err := toFloat(v)
	if err != nil {
		return err
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

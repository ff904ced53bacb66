package override

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// ExprKey marks a mapping whose value is an expression.
const ExprKey = "$expr"

// evaluate replaces every {"$expr": "..."} mapping found in v with the
// result of the expression run against env.
func evaluate(v any, env map[string]any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if code, ok := expression(t); ok {
			out, err := expr.Eval(code, env)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrExpression, code, err)
			}
			return out, nil
		}
		out := make(map[string]any, len(t))
		for k, item := range t {
			r, err := evaluate(item, env)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			r, err := evaluate(item, env)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}
	return v, nil
}

func expression(m map[string]any) (string, bool) {
	if len(m) != 1 {
		return "", false
	}
	code, ok := m[ExprKey].(string)
	return code, ok
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knetic/govaluate"
)

var (
	// ErrInvalidRule is returned when an accept expression does not parse
	ErrInvalidRule = errors.New("invalid accept rule")

	// ErrRuleResult is returned when an accept expression does not yield a boolean
	ErrRuleResult = errors.New("accept rule did not evaluate to a boolean")
)

// Rule is a compiled accept expression, for example
//
//	ratio >= 1.5 && codeword_width == 2
//
// Variables come from the statistics of one compressed file.
type Rule struct {
	expr *govaluate.EvaluableExpression
}

// NewRule compiles expr. An empty expression accepts everything.
func NewRule(expr string) (*Rule, error) {
	if strings.TrimSpace(expr) == "" {
		return &Rule{}, nil
	}
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, ruleFunctions())
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidRule, expr, err)
	}
	return &Rule{expr: e}, nil
}

// Evaluate reports whether vars satisfy the rule.
func (r *Rule) Evaluate(vars map[string]interface{}) (bool, error) {
	if r.expr == nil {
		return true, nil
	}
	result, err := r.expr.Evaluate(vars)
	if err != nil {
		return false, fmt.Errorf("evaluating %q: %w", r.expr.String(), err)
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("%w: %q gave %v", ErrRuleResult, r.expr.String(), result)
	}
	return ok, nil
}

// Vars lists the variables the rule refers to.
func (r *Rule) Vars() []string {
	if r.expr == nil {
		return nil
	}
	return r.expr.Vars()
}

func (r *Rule) String() string {
	if r.expr == nil {
		return "true"
	}
	return r.expr.String()
}

// ruleFunctions are the functions callable from accept expressions.
// govaluate passes numbers as float64.
func ruleFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		// bmp_size(width, height) is the size of an uncompressed 24-bit BMP
		"bmp_size": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("bmp_size expects 2 arguments (width, height)")
			}
			width, ok := args[0].(float64)
			if !ok {
				return nil, fmt.Errorf("arg 1 (width) must be numeric for bmp_size")
			}
			height, ok := args[1].(float64)
			if !ok {
				return nil, fmt.Errorf("arg 2 (height) must be numeric for bmp_size")
			}
			bytesPerRow := int(width) * 3
			paddedRowSize := bytesPerRow + (4-bytesPerRow%4)%4
			return float64(54 + int(height)*paddedRowSize), nil
		},
		// max(a, b)
		"max": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("max expects 2 arguments")
			}
			a, okA := args[0].(float64)
			b, okB := args[1].(float64)
			if !okA || !okB {
				return nil, fmt.Errorf("max arguments must be numeric")
			}
			if a > b {
				return a, nil
			}
			return b, nil
		},
	}
}

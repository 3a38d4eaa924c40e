// Package query provides JQ-based extraction over captured response bodies.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Engine executes JQ expressions against decoded sample values.
type Engine struct{}

// NewEngine creates a query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Result contains the values a JQ expression extracted.
type Result struct {
	Values        []any    `json:"values"`
	Errors        []string `json:"errors,omitempty"`
	RawCount      int      `json:"raw_count"`
	MatchedLabels []string `json:"matched_labels,omitempty"`
}

// Query runs a JQ expression against each input in order. Labels identify
// inputs in error messages; pass nil to get positional labels. Results from
// all inputs are combined, optionally deduplicated, and capped at maxResults
// when it is positive.
func (e *Engine) Query(inputs []any, labels []string, expression string, deduplicate bool, maxResults int) (*Result, error) {
	parsed, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	result := &Result{
		Values: make([]any, 0),
		Errors: make([]string, 0),
	}

	seen := make(map[string]bool)
	seenErrors := make(map[string]bool)
	matched := make(map[string]bool)

	for i, input := range inputs {
		if maxResults > 0 && len(result.Values) >= maxResults {
			break
		}

		label := fmt.Sprintf("sample[%d]", i)
		if labels != nil && i < len(labels) && labels[i] != "" {
			label = labels[i]
		}

		iter := code.Run(input)
		for {
			if maxResults > 0 && len(result.Values) >= maxResults {
				break
			}

			v, ok := iter.Next()
			if !ok {
				break
			}

			if err, isErr := v.(error); isErr {
				errMsg := formatJQError(label, err)
				if !seenErrors[errMsg] {
					result.Errors = append(result.Errors, errMsg)
					seenErrors[errMsg] = true
				}
				continue
			}
			if v == nil {
				continue
			}

			result.RawCount++
			if !matched[label] {
				matched[label] = true
				result.MatchedLabels = append(result.MatchedLabels, label)
			}

			if deduplicate {
				key := valueKey(v)
				if seen[key] {
					continue
				}
				seen[key] = true
			}

			result.Values = append(result.Values, v)
		}
	}

	return result, nil
}

// formatJQError decorates a JQ runtime error with a hint for common
// mistakes. gojq's runtime errors carry no typed wrappers beyond HaltError,
// so string matching decorates the display message only.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this sample)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}

// valueKey builds a deduplication key for a query result value.
func valueKey(v any) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case float64:
		return fmt.Sprintf("n:%v", val)
	case bool:
		return fmt.Sprintf("b:%v", val)
	case nil:
		return "null"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("?:%v", val)
		}
		return "j:" + string(b)
	}
}

// ValidateExpression checks a JQ expression without executing it.
func (e *Engine) ValidateExpression(expression string) error {
	parsed, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return fmt.Errorf("invalid jq expression: %w", err)
	}
	if _, err := gojq.Compile(parsed); err != nil {
		return fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return nil
}

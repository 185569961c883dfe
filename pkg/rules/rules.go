// Package rules provides the declarative rule set consumed by the
// quality checks: per-column constraints, unique-key column groups, and
// named row-rule expressions. A Set is immutable once loaded and is
// shared read-only across all checks.
package rules

import (
	"fmt"
	"regexp"

	"github.com/probelens-labs/probelens/pkg/dataset"
)

// ColumnRule is the validity constraint set for one column. All fields
// are optional; the zero value constrains nothing.
type ColumnRule struct {
	// Type is the declared semantic type: int, float, bool, date or
	// string. Empty means no type constraint.
	Type string

	// Required marks null cells as invalid.
	Required bool

	// Min and Max bound the numeric reading of the cell.
	Min *float64
	Max *float64

	// Pattern is the compiled regex constraint, anchored at the start
	// of the value. Nil means no pattern constraint.
	Pattern *regexp.Regexp

	// Allowed is the closed value set, empty meaning unconstrained.
	Allowed []dataset.Value

	// NotFuture marks date values after the current time as invalid.
	NotFuture bool
}

// AllowedContains reports whether the cell matches one of the allowed
// values, comparing numbers numerically and everything else strictly.
func (r ColumnRule) AllowedContains(v dataset.Value) bool {
	for _, a := range r.Allowed {
		if a.Equal(v) {
			return true
		}
		// A numeric cell matches a numeric allowed entry regardless of
		// the original spelling.
		if an, aok := a.AsNumber(); aok {
			if vn, vok := v.AsNumber(); vok && an == vn {
				return true
			}
		}
	}
	return false
}

// RowRule is a named boolean predicate over one or more columns,
// evaluated per row by the expression engine.
type RowRule struct {
	Name string
	Expr string
}

// Set is a parsed rule configuration.
type Set struct {
	Columns    map[string]ColumnRule
	UniqueKeys [][]string
	RowRules   []RowRule

	// columnOrder preserves the YAML declaration order of column rules
	// so reports stay deterministic.
	columnOrder []string
}

// ColumnNames returns the declared column names in declaration order.
func (s *Set) ColumnNames() []string {
	if s == nil {
		return nil
	}
	return s.columnOrder
}

// ColumnRule returns the rule for a column, if declared.
func (s *Set) ColumnRule(name string) (ColumnRule, bool) {
	if s == nil {
		return ColumnRule{}, false
	}
	r, ok := s.Columns[name]
	return r, ok
}

// MissingColumns returns the rule-declared column names absent from the
// given dataset columns, in declaration order.
func (s *Set) MissingColumns(ds *dataset.Dataset) []string {
	if s == nil {
		return nil
	}
	var missing []string
	for _, name := range s.columnOrder {
		if !ds.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// ConfigError reports a structurally malformed rules document. It is
// fatal: a profiling run never starts with a broken configuration.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rules config: %s", e.Message)
}

func configErrorf(format string, args ...any) error {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

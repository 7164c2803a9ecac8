package filter

import "fmt"

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// MaxValuesPerCondition bounds the any-of list of a single condition.
const MaxValuesPerCondition = 64

// Expression is a structured tag filter with must/must_not boolean semantics.
type Expression struct {
	must    []Condition
	mustNot []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, mustNot []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(mustNot) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must_not conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, mustNot: mustNot}, nil
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// MustNot returns the must-not conditions.
func (e Expression) MustNot() []Condition { return e.mustNot }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.mustNot) == 0
}

// Condition matches a tag field against any of its values.
type Condition struct {
	key    string
	values []string
}

// NewAnyOf creates a tag condition matching any of values.
func NewAnyOf(key string, values ...string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if len(values) == 0 {
		return Condition{}, fmt.Errorf("at least one value is required for key %q", key)
	}
	if len(values) > MaxValuesPerCondition {
		return Condition{}, fmt.Errorf("too many values for key %q (max %d)", key, MaxValuesPerCondition)
	}
	for _, v := range values {
		if v == "" {
			return Condition{}, fmt.Errorf("empty value for key %q", key)
		}
	}
	return Condition{key: key, values: append([]string(nil), values...)}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Values returns the accepted values.
func (c Condition) Values() []string { return c.values }

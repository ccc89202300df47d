package gametypes

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ConditionKind discriminates title conditions.
type ConditionKind string

const (
	ConditionHighest   ConditionKind = "highest"
	ConditionLowest    ConditionKind = "lowest"
	ConditionExact     ConditionKind = "exact"
	ConditionFlag      ConditionKind = "flag"
	ConditionThreshold ConditionKind = "threshold"
)

// ErrInvalidTitleDefinition is returned for malformed title definitions.
var ErrInvalidTitleDefinition = errors.New("invalid title definition")

// Condition decides which players earn a title from one stat.
type Condition interface {
	Kind() ConditionKind
	Stat() string
}

// Highest awards every player tied at the maximum value.
type Highest struct{ StatKey string }

// Lowest awards every player tied at the minimum value.
type Lowest struct{ StatKey string }

// Exact awards players whose value equals Value.
type Exact struct {
	StatKey string
	Value   float64
}

// Flag awards players whose stat is true.
type Flag struct{ StatKey string }

// Threshold awards players whose value is at least Min.
type Threshold struct {
	StatKey string
	Min     float64
}

func (Highest) Kind() ConditionKind   { return ConditionHighest }
func (Lowest) Kind() ConditionKind    { return ConditionLowest }
func (Exact) Kind() ConditionKind     { return ConditionExact }
func (Flag) Kind() ConditionKind      { return ConditionFlag }
func (Threshold) Kind() ConditionKind { return ConditionThreshold }

func (c Highest) Stat() string   { return c.StatKey }
func (c Lowest) Stat() string    { return c.StatKey }
func (c Exact) Stat() string     { return c.StatKey }
func (c Flag) Stat() string      { return c.StatKey }
func (c Threshold) Stat() string { return c.StatKey }

// TitleDefinition is one title a game type can award.
type TitleDefinition struct {
	Name        string
	Description string
	IsFunny     bool
	Condition   Condition
}

type conditionJSON struct {
	Type  ConditionKind `json:"type"`
	Stat  string        `json:"stat"`
	Value *float64      `json:"value,omitempty"`
}

type titleDefinitionJSON struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	IsFunny     bool          `json:"is_funny"`
	Condition   conditionJSON `json:"condition"`
}

func (d TitleDefinition) MarshalJSON() ([]byte, error) {
	if d.Condition == nil {
		return nil, fmt.Errorf("%w: %q has no condition", ErrInvalidTitleDefinition, d.Name)
	}
	c := conditionJSON{Type: d.Condition.Kind(), Stat: d.Condition.Stat()}
	switch cond := d.Condition.(type) {
	case Exact:
		v := cond.Value
		c.Value = &v
	case Threshold:
		v := cond.Min
		c.Value = &v
	}
	return json.Marshal(titleDefinitionJSON{
		Name:        d.Name,
		Description: d.Description,
		IsFunny:     d.IsFunny,
		Condition:   c,
	})
}

func (d *TitleDefinition) UnmarshalJSON(data []byte) error {
	var raw titleDefinitionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidTitleDefinition)
	}
	if raw.Condition.Stat == "" {
		return fmt.Errorf("%w: %q has no stat", ErrInvalidTitleDefinition, raw.Name)
	}

	var cond Condition
	switch raw.Condition.Type {
	case ConditionHighest:
		cond = Highest{StatKey: raw.Condition.Stat}
	case ConditionLowest:
		cond = Lowest{StatKey: raw.Condition.Stat}
	case ConditionFlag:
		cond = Flag{StatKey: raw.Condition.Stat}
	case ConditionExact:
		if raw.Condition.Value == nil {
			return fmt.Errorf("%w: %q exact needs a value", ErrInvalidTitleDefinition, raw.Name)
		}
		cond = Exact{StatKey: raw.Condition.Stat, Value: *raw.Condition.Value}
	case ConditionThreshold:
		if raw.Condition.Value == nil {
			return fmt.Errorf("%w: %q threshold needs a value", ErrInvalidTitleDefinition, raw.Name)
		}
		cond = Threshold{StatKey: raw.Condition.Stat, Min: *raw.Condition.Value}
	default:
		return fmt.Errorf("%w: unknown condition %q", ErrInvalidTitleDefinition, raw.Condition.Type)
	}

	*d = TitleDefinition{
		Name:        raw.Name,
		Description: raw.Description,
		IsFunny:     raw.IsFunny,
		Condition:   cond,
	}
	return nil
}

// ParseTitleDefinitions decodes a JSON array of title definitions.
func ParseTitleDefinitions(raw json.RawMessage) ([]TitleDefinition, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var defs []TitleDefinition
	if err := json.Unmarshal(raw, &defs); err != nil {
		if errors.Is(err, ErrInvalidTitleDefinition) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidTitleDefinition, err)
	}
	return defs, nil
}

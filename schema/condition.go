package schema

import "sort"

// ConditionType tags lookup condition descriptors in configuration files.
type ConditionType string

const (
	// TypeSimple is the implicit type of condition descriptors without a type tag.
	TypeSimple ConditionType = "simple"
	// TypeConditionalFallback selects between then/else sub-conditions based on an if sub-condition.
	TypeConditionalFallback ConditionType = "conditionalFallback"
)

// Operator controls how a condition compares a field against the queue value.
type Operator string

const (
	OperatorLike    Operator = "like"
	OperatorEquals  Operator = "equals"
	OperatorPrefix  Operator = "prefix"
	OperatorPresent Operator = "present"
)

func (o Operator) valid() bool {
	switch o {
	case OperatorLike, OperatorEquals, OperatorPrefix, OperatorPresent:
		return true
	}
	return false
}

// Condition is a lookup condition descriptor: SimpleCondition or FallbackCondition.
type Condition interface {
	Type() ConditionType
	clone() Condition
}

// SimpleCondition matches a single field against the queue value.
type SimpleCondition struct {
	Field    string
	Operator Operator
	// Queue holds the search term. Nil means "not set", which branches
	// evaluated for presence rely on.
	Queue *string
}

// Type implements Condition.
func (SimpleCondition) Type() ConditionType { return TypeSimple }

func (c SimpleCondition) clone() Condition { return c.Clone() }

// Clone returns a copy that shares no memory with c.
func (c SimpleCondition) Clone() SimpleCondition {
	if c.Queue != nil {
		q := *c.Queue
		c.Queue = &q
	}
	return c
}

// WithQueue returns a copy of c carrying q.
func (c SimpleCondition) WithQueue(q string) SimpleCondition {
	c.Queue = &q
	return c
}

// QueueValue returns the queue value and whether it is set.
func (c SimpleCondition) QueueValue() (string, bool) {
	if c.Queue == nil {
		return "", false
	}
	return *c.Queue, true
}

// FallbackCondition evaluates If; the downstream query layer applies Then when
// If holds and Else otherwise. If gets no queue value by default, so it is
// evaluated as a presence check unless configured with its own queue.
type FallbackCondition struct {
	If   SimpleCondition
	Then SimpleCondition
	Else SimpleCondition
}

// Type implements Condition.
func (FallbackCondition) Type() ConditionType { return TypeConditionalFallback }

func (c FallbackCondition) clone() Condition {
	return FallbackCondition{If: c.If.Clone(), Then: c.Then.Clone(), Else: c.Else.Clone()}
}

// Conditions is a named set of lookup conditions.
type Conditions map[string]Condition

// Clone returns a deep copy of the set.
func (c Conditions) Clone() Conditions {
	if c == nil {
		return nil
	}
	out := make(Conditions, len(c))
	for name, cond := range c {
		if cond == nil {
			continue
		}
		out[name] = cond.clone()
	}
	return out
}

// Names returns condition names sorted alphabetically. Conditions are
// independent, so the order only keeps generated queries stable.
func (c Conditions) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

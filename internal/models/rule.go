package models

// ConditionOp names one of the closed set of predicate shapes a rule can test
type ConditionOp string

const (
	// OpAnyEquals holds when any dependency answer equals the condition value
	OpAnyEquals ConditionOp = "any_equals"
	// OpEquals holds when the single dependency answer equals the condition value
	OpEquals ConditionOp = "equals"
	// OpEmpty holds when the single dependency answer is empty
	OpEmpty ConditionOp = "empty"
	// OpCollides holds when the candidate value is non-empty and equals any dependency answer
	OpCollides ConditionOp = "collides"
)

// IsKnown reports whether op is part of the supported predicate set
func (op ConditionOp) IsKnown() bool {
	switch op {
	case OpAnyEquals, OpEquals, OpEmpty, OpCollides:
		return true
	}
	return false
}

// SingleDependency reports whether the op reads exactly one dependency
func (op ConditionOp) SingleDependency() bool {
	return op == OpEquals || op == OpEmpty
}

// Condition is the declarative predicate of a rule
type Condition struct {
	Op    ConditionOp `yaml:"op" json:"op"`
	Value string      `yaml:"value,omitempty" json:"value,omitempty"`
}

// Action is what a matched rule does to its question
type Action string

const (
	ActionSetToBlank    Action = "set_to_blank"
	ActionSetFixedValue Action = "set_fixed_value"
	ActionMarkInvalid   Action = "mark_invalid"
	ActionEnable        Action = "enable"
)

// IsKnown reports whether the action is supported
func (a Action) IsKnown() bool {
	switch a {
	case ActionSetToBlank, ActionSetFixedValue, ActionMarkInvalid, ActionEnable:
		return true
	}
	return false
}

// Rule pairs a condition over other answers with an action on the owning question
type Rule struct {
	Dependencies []string   `yaml:"dependencies" json:"dependencies"`
	Condition    *Condition `yaml:"condition" json:"condition"`
	Action       Action     `yaml:"action" json:"action"`
	Value        string     `yaml:"value,omitempty" json:"value,omitempty"`     // payload of set_fixed_value
	Message      string     `yaml:"message,omitempty" json:"message,omitempty"` // overrides the mark_invalid text
}

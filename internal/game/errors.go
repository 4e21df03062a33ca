package game

import (
	"errors"
	"fmt"
)

// ErrorKind classifies rule violations so callers can branch without
// string matching.
type ErrorKind int

const (
	ErrUnknownActionType ErrorKind = iota
	ErrInvalidEvolutionChain
	ErrEvolutionSickness
	ErrFirstTurnRestriction
	ErrDeckOut
	ErrBenchFull
	ErrInvalidTarget
)

var errorKindNames = map[ErrorKind]string{
	ErrUnknownActionType:     "unknown action type",
	ErrInvalidEvolutionChain: "invalid evolution chain",
	ErrEvolutionSickness:     "evolution sickness",
	ErrFirstTurnRestriction:  "first turn restriction",
	ErrDeckOut:               "deck out",
	ErrBenchFull:             "bench full",
	ErrInvalidTarget:         "invalid target",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// RuleError is a domain error carrying its kind.
type RuleError struct {
	Kind ErrorKind
	msg  string
}

func (e *RuleError) Error() string {
	if e.msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.msg
}

// Is supports errors.Is against another RuleError of the same kind.
func (e *RuleError) Is(target error) bool {
	var other *RuleError
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func newRuleError(kind ErrorKind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// IsRuleError reports whether err is a RuleError of the given kind.
func IsRuleError(err error, kind ErrorKind) bool {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}

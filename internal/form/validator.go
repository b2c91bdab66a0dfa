package form

import (
	"fmt"
	"strconv"
	"strings"
)

// Validator checks a candidate before it is stored. Like Strategy the set is
// closed; a nil Validator accepts any non-empty candidate unchanged.
type Validator interface {
	validator()
}

// OneOf accepts text whose lower-cased form is in Options. The accepted value
// keeps the caller's casing.
type OneOf struct {
	Options        []string
	RejectTemplate string
}

// PositiveInteger accepts text that parses as an integer >= 1.
type PositiveInteger struct {
	RejectTemplate string
}

// CueFlag turns text into a boolean by cue tokens: TrueCue wins over FalseCue.
// Boolean candidates pass through unchanged.
type CueFlag struct {
	TrueCue        string
	FalseCue       string
	RejectTemplate string
}

func (OneOf) validator()           {}
func (PositiveInteger) validator() {}
func (CueFlag) validator()         {}

// Result is either an accepted value or a rejection with its message template.
type Result struct {
	Value          Value
	Rejected       bool
	RejectTemplate string
}

func accept(v Value) Result { return Result{Value: v} }

func reject(template string) Result {
	return Result{Rejected: true, RejectTemplate: template}
}

// Validate applies v to candidate.
func Validate(v Validator, candidate Value) Result {
	if v == nil {
		if !candidate.IsSet() {
			return reject("")
		}
		return accept(candidate)
	}

	switch val := v.(type) {
	case OneOf:
		text, ok := candidate.AsText()
		if !ok {
			return reject(val.RejectTemplate)
		}
		needle := strings.ToLower(strings.TrimSpace(text))
		for _, option := range val.Options {
			if strings.ToLower(option) == needle {
				return accept(candidate)
			}
		}
		return reject(val.RejectTemplate)

	case PositiveInteger:
		text, ok := candidate.AsText()
		if !ok {
			return reject(val.RejectTemplate)
		}
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || n < 1 {
			return reject(val.RejectTemplate)
		}
		return accept(candidate)

	case CueFlag:
		if _, isBool := candidate.AsBool(); isBool {
			return accept(candidate)
		}
		text, ok := candidate.AsText()
		if !ok {
			return reject(val.RejectTemplate)
		}
		lower := strings.ToLower(text)
		trueCue, falseCue := strings.ToLower(val.TrueCue), strings.ToLower(val.FalseCue)
		switch {
		case trueCue != "" && strings.Contains(lower, trueCue):
			return accept(Bool(true))
		case falseCue != "" && strings.Contains(lower, falseCue):
			return accept(Bool(false))
		default:
			return reject(val.RejectTemplate)
		}

	default:
		panic(fmt.Sprintf("form: unhandled validator %T", v))
	}
}

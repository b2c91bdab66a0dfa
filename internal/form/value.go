package form

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tells a raw text candidate apart from one that is already boolean.
type Kind int

const (
	KindUnset Kind = iota
	KindText
	KindBool
)

// Value is a slot value or extraction candidate.
type Value struct {
	kind Kind
	text string
	flag bool
}

func Unset() Value { return Value{} }

// Text returns a text value. Blank text is unset.
func Text(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{kind: KindText, text: s}
}

func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// ValueOf converts a decoded JSON value (slot or entity) into a Value.
func ValueOf(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case string:
		return Text(v)
	case bool:
		return Bool(v)
	case float64:
		return Text(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return Text(strconv.Itoa(v))
	default:
		return Text(fmt.Sprint(v))
	}
}

func (v Value) Kind() Kind  { return v.kind }
func (v Value) IsSet() bool { return v.kind != KindUnset }

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return ""
	}
}

// AsText returns the text and true only for text values.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsBool returns the flag and true only for boolean values.
func (v Value) AsBool() (bool, bool) {
	return v.flag, v.kind == KindBool
}

// Interface is the JSON form sent back in slot events: string, bool or nil.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindText:
		return v.text
	case KindBool:
		return v.flag
	default:
		return nil
	}
}

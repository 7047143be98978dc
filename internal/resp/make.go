package resp

import (
	"fmt"
	"strconv"
	"strings"
)

// Reply tokens short and common enough to go out as simple strings.
// Everything else is length-prefixed.
var commonReplies = map[string]struct{}{
	"OK":     {},
	"PONG":   {},
	"QUEUED": {},
	"none":   {},
	"string": {},
	"list":   {},
	"set":    {},
	"zset":   {},
}

// MakeSimpleString construct SimpleString Value from string
func MakeSimpleString(s string) Value {
	return Value{
		Kind: KindSimpleString,
		Str:  []byte(s),
	}
}

// MakeError construct Error Value from string
func MakeError(s string) Value {
	return Value{
		Kind: KindError,
		Str:  []byte(s),
	}
}

// MakeErrorWrongNumberOfArguments construct Error Value that command had wrong number of arguments for command
func MakeErrorWrongNumberOfArguments(cmd string) Value {
	return MakeError(fmt.Sprintf("wrong number of arguments for %s command", cmd))
}

// MakeBulkError construct BulkError Value from string
func MakeBulkError(s string) Value {
	return Value{
		Kind: KindBulkError,
		Str:  []byte(s),
	}
}

// MakeBulkString construct BulkString Value from string
func MakeBulkString(s string) Value {
	return Value{
		Kind: KindBulkString,
		Str:  []byte(s),
	}
}

// MakeInteger construct Integer Value from int64
func MakeInteger(n int64) Value {
	return Value{
		Kind: KindInteger,
		Int:  n,
	}
}

// MakeDouble construct Double Value from float64
func MakeDouble(f float64) Value {
	return Value{
		Kind:  KindDouble,
		Float: f,
	}
}

// MakeBoolean construct Boolean Value from bool
func MakeBoolean(b bool) Value {
	return Value{
		Kind: KindBoolean,
		Bool: b,
	}
}

// MakeNull constructs the Null Value
func MakeNull() Value {
	return Value{Kind: KindNull}
}

// MakeNil constructs the absent-value marker, distinct from Null
func MakeNil() Value {
	return Value{Kind: KindNil}
}

// MakeArray creates an Array containing the provided elements
func MakeArray(values []Value) Value {
	return Value{
		Kind:  KindArray,
		Array: values,
	}
}

// MakeStringArray creates an Array of strings, each routed through the
// same string heuristic as Make
func MakeStringArray(elems []string) Value {
	values := make([]Value, len(elems))
	for i, s := range elems {
		values[i] = makeString(s)
	}
	return MakeArray(values)
}

// MakeMap creates a Map from the provided pairs, preserving their order
func MakeMap(pairs []Pair) Value {
	return Value{
		Kind: KindMap,
		Map:  pairs,
	}
}

// Make routes an arbitrary handler result into the value model.
// Numbers go out as integers unless their textual form carries a
// fractional part; strings follow the common-reply heuristic; anything
// outside the supported set becomes a BulkError, never an encode failure.
func Make(v any) Value {
	switch x := v.(type) {
	case nil:
		return MakeNull()
	case Value:
		return x
	case bool:
		return MakeBoolean(x)
	case int:
		return MakeInteger(int64(x))
	case int32:
		return MakeInteger(int64(x))
	case int64:
		return MakeInteger(x)
	case float32:
		return makeNumber(float64(x))
	case float64:
		return makeNumber(x)
	case string:
		return makeString(x)
	case []byte:
		return Value{Kind: KindBulkString, Str: x}
	case error:
		return MakeError(x.Error())
	case []string:
		return MakeStringArray(x)
	case []Value:
		return MakeArray(x)
	case []any:
		values := make([]Value, len(x))
		for i, el := range x {
			values[i] = Make(el)
		}
		return MakeArray(values)
	default:
		return MakeBulkError(unsupportedTypeText)
	}
}

func makeNumber(f float64) Value {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eE") {
		return MakeDouble(f)
	}
	return MakeInteger(int64(f))
}

func makeString(s string) Value {
	if len(s) == 0 {
		return MakeBulkString("")
	}
	if _, ok := commonReplies[s]; ok {
		return MakeSimpleString(s)
	}
	return MakeBulkString(s)
}

package resp_test

import (
	"bytes"
	"testing"

	"github.com/junealder/eventide/internal/resp"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    resp.Value
		expected string
	}{
		{
			name:     "Integer positive",
			input:    resp.MakeInteger(100),
			expected: ":100\r\n",
		},
		{
			name:     "Integer negative",
			input:    resp.MakeInteger(-42),
			expected: ":-42\r\n",
		},
		{
			name:     "Double",
			input:    resp.MakeDouble(3.5),
			expected: ",3.5\r\n",
		},
		{
			name:     "Boolean true",
			input:    resp.MakeBoolean(true),
			expected: "#t\r\n",
		},
		{
			name:     "Boolean false",
			input:    resp.MakeBoolean(false),
			expected: "#f\r\n",
		},
		{
			name:     "Null",
			input:    resp.MakeNull(),
			expected: "_\r\n",
		},
		{
			name:     "Nil marker",
			input:    resp.MakeNil(),
			expected: "~\r\n",
		},
		{
			name:     "Simple String",
			input:    resp.MakeSimpleString("OK"),
			expected: "+OK\r\n",
		},
		{
			name:     "Bulk String",
			input:    resp.MakeBulkString("hello"),
			expected: "$5\r\nhello\r\n",
		},
		{
			name:     "Bulk String Empty",
			input:    resp.MakeBulkString(""),
			expected: "$0\r\n\r\n",
		},
		{
			name:     "Short error collapses to generic",
			input:    resp.MakeError("Short"),
			expected: "-Unknown error\r\n",
		},
		{
			name:     "Long error goes out as bulk error",
			input:    resp.MakeError("This is a long error message"),
			expected: "!28\r\nThis is a long error message\r\n",
		},
		{
			name:     "Bulk error",
			input:    resp.MakeBulkError("SYNTAX invalid syntax"),
			expected: "!21\r\nSYNTAX invalid syntax\r\n",
		},
		{
			name: "Array of Strings",
			input: resp.MakeArray([]resp.Value{
				resp.MakeBulkString("fff"),
				resp.MakeBulkString("ttt"),
			}),
			expected: "*2\r\n$3\r\nfff\r\n$3\r\nttt\r\n",
		},
		{
			name:     "Array Empty",
			input:    resp.MakeArray([]resp.Value{}),
			expected: "*0\r\n",
		},
		{
			name: "Mixed Array",
			input: resp.MakeArray([]resp.Value{
				resp.MakeInteger(1),
				resp.MakeArray([]resp.Value{
					resp.MakeSimpleString("inner"),
				}),
			}),
			expected: "*2\r\n:1\r\n*1\r\n+inner\r\n",
		},
		{
			name: "Map keeps insertion order",
			input: resp.MakeMap([]resp.Pair{
				{Key: resp.MakeSimpleString("b"), Value: resp.MakeInteger(2)},
				{Key: resp.MakeSimpleString("a"), Value: resp.MakeInteger(1)},
			}),
			expected: "%2\r\n+b\r\n:2\r\n+a\r\n:1\r\n",
		},
		{
			name:     "Unsupported kind",
			input:    resp.Value{},
			expected: "!21\r\nUnsupported data type\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := resp.NewEncoder(&buf)

			if err := enc.Encode(tt.input); err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}

			if buf.String() != tt.expected {
				t.Errorf("Encode() got = %q, want %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestMakeRouting(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"Whole float routes to integer", 7.0, ":7\r\n"},
		{"Fractional float routes to double", 2.5, ",2.5\r\n"},
		{"Large float keeps scientific form", 1e21, ",1e+21\r\n"},
		{"Int", 42, ":42\r\n"},
		{"Common reply token", "OK", "+OK\r\n"},
		{"Ordinary string", "hello", "$5\r\nhello\r\n"},
		{"Empty string", "", "$0\r\n\r\n"},
		{"Nil value", nil, "_\r\n"},
		{"Bool", true, "#t\r\n"},
		{"String slice", []string{"a", "OK"}, "*2\r\n$1\r\na\r\n+OK\r\n"},
		{"Unsupported type", struct{}{}, "!21\r\nUnsupported data type\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := resp.NewEncoder(&buf)

			if err := enc.Encode(resp.Make(tt.input)); err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}

			if buf.String() != tt.expected {
				t.Errorf("Encode(Make()) got = %q, want %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	values := []resp.Value{
		resp.MakeInteger(1000),
		resp.MakeDouble(-2.75),
		resp.MakeBoolean(true),
		resp.MakeNull(),
		resp.MakeSimpleString("PONG"),
		resp.MakeBulkString("binary safe \n payload"),
		resp.MakeArray([]resp.Value{
			resp.MakeInteger(1),
			resp.MakeBulkString("two"),
			resp.MakeArray([]resp.Value{resp.MakeBoolean(false)}),
		}),
		resp.MakeMap([]resp.Pair{
			{Key: resp.MakeBulkString("key"), Value: resp.MakeInteger(9)},
		}),
	}

	for _, want := range values {
		var buf bytes.Buffer
		if err := resp.NewEncoder(&buf).Encode(want); err != nil {
			t.Fatalf("Encode() failed: %v", err)
		}

		got, err := resp.NewDecoder(&buf).Decode()
		if err != nil {
			t.Fatalf("Decode() failed on %q: %v", buf.String(), err)
		}

		assertValueEqual(t, got, want)
	}
}

func assertValueEqual(t *testing.T, got, want resp.Value) {
	t.Helper()

	if got.Kind != want.Kind {
		t.Fatalf("kind = %v, want %v", got.Kind, want.Kind)
	}
	if string(got.Str) != string(want.Str) {
		t.Errorf("str = %q, want %q", got.Str, want.Str)
	}
	if got.Int != want.Int || got.Float != want.Float || got.Bool != want.Bool {
		t.Errorf("scalars = (%d, %g, %v), want (%d, %g, %v)",
			got.Int, got.Float, got.Bool, want.Int, want.Float, want.Bool)
	}
	if len(got.Array) != len(want.Array) {
		t.Fatalf("array len = %d, want %d", len(got.Array), len(want.Array))
	}
	for i := range got.Array {
		assertValueEqual(t, got.Array[i], want.Array[i])
	}
	if len(got.Map) != len(want.Map) {
		t.Fatalf("map len = %d, want %d", len(got.Map), len(want.Map))
	}
	for i := range got.Map {
		assertValueEqual(t, got.Map[i].Key, want.Map[i].Key)
		assertValueEqual(t, got.Map[i].Value, want.Map[i].Value)
	}
}

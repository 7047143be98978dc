package resp_test

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/junealder/eventide/internal/resp"
)

func TestDecodeInteger(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr error
	}{
		{
			name:  "Valid positive",
			input: ":1000\r\n",
			want:  1000,
		},
		{
			name:  "Valid positive with +",
			input: ":+1230\r\n",
			want:  1230,
		},
		{
			name:  "Valid negative",
			input: ":-15\r\n",
			want:  -15,
		},
		{
			name:  "Valid zero",
			input: ":0\r\n",
			want:  0,
		},
		{
			name:    "Invalid ending",
			input:   ":1000\n",
			wantErr: resp.ErrInvalidEnding,
		},
		{
			name:    "Not a number",
			input:   ":12ab\r\n",
			wantErr: resp.ErrBadInteger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(tt.input))

			val, err := d.Decode()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Decode() unexpected error %v", err)
			}

			if val.Kind != resp.KindInteger {
				t.Errorf("Decode() kind = %v, want %v", val.Kind, resp.KindInteger)
			}

			if val.Int != tt.want {
				t.Errorf("Decode() int = %v, want %v", val.Int, tt.want)
			}
		})
	}
}

func TestDecodeDouble(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr error
	}{
		{"Plain fraction", ",3.14\r\n", 3.14, nil},
		{"Negative", ",-0.5\r\n", -0.5, nil},
		{"Scientific", ",1e3\r\n", 1000, nil},
		{"Malformed", ",abc\r\n", 0, resp.ErrBadDouble},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(tt.input))

			val, err := d.Decode()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() unexpected error %v", err)
			}
			if val.Kind != resp.KindDouble || val.Float != tt.want {
				t.Errorf("Decode() = (%v, %v), want double %v", val.Kind, val.Float, tt.want)
			}
		})
	}
}

func TestDecodeBoolean(t *testing.T) {
	d := resp.NewDecoder(strings.NewReader("#t\r\n#f\r\n#x\r\n"))

	val, err := d.Decode()
	if err != nil || val.Kind != resp.KindBoolean || !val.Bool {
		t.Errorf("Decode(#t) = (%v, %v), err %v", val.Kind, val.Bool, err)
	}

	val, err = d.Decode()
	if err != nil || val.Kind != resp.KindBoolean || val.Bool {
		t.Errorf("Decode(#f) = (%v, %v), err %v", val.Kind, val.Bool, err)
	}

	if _, err = d.Decode(); !errors.Is(err, resp.ErrBadBoolean) {
		t.Errorf("Decode(#x) error = %v, want %v", err, resp.ErrBadBoolean)
	}
}

func TestDecodeBulkString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantNull bool
		wantErr  error
	}{
		{
			name:  "Simple bulk",
			input: "$5\r\nWorld\r\n",
			want:  "World",
		},
		{
			name:  "Empty bulk",
			input: "$0\r\n\r\n",
			want:  "",
		},
		{
			name:     "Null bulk",
			input:    "$-1\r\n",
			wantNull: true,
		},
		{
			name:    "Length mismatch short payload",
			input:   "$5\r\nWor\r\n",
			wantErr: resp.ErrBulkLength,
		},
		{
			name:    "Negative length",
			input:   "$-3\r\nabc\r\n",
			wantErr: resp.ErrBadCount,
		},
		{
			name:    "Bad length text",
			input:   "$abc\r\nabc\r\n",
			wantErr: resp.ErrBadCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(tt.input))

			val, err := d.Decode()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() unexpected error %v", err)
			}

			if tt.wantNull {
				if val.Kind != resp.KindNull {
					t.Errorf("Decode() kind = %v, want null", val.Kind)
				}
				return
			}

			if val.Kind != resp.KindBulkString || string(val.Str) != tt.want {
				t.Errorf("Decode() = (%v, %q), want bulk %q", val.Kind, val.Str, tt.want)
			}
		})
	}
}

func TestDecodeArray(t *testing.T) {
	d := resp.NewDecoder(strings.NewReader("*2\r\n+Foo\r\n+Bar\r\n"))

	val, err := d.Decode()
	if err != nil {
		t.Fatalf("Decode() unexpected error %v", err)
	}
	if val.Kind != resp.KindArray || len(val.Array) != 2 {
		t.Fatalf("Decode() = (%v, %d elems), want array of 2", val.Kind, len(val.Array))
	}
	if string(val.Array[0].Str) != "Foo" || string(val.Array[1].Str) != "Bar" {
		t.Errorf("Decode() elems = %q, %q", val.Array[0].Str, val.Array[1].Str)
	}
}

func TestDecodeNullArray(t *testing.T) {
	d := resp.NewDecoder(strings.NewReader("*-1\r\n"))

	val, err := d.Decode()
	if err != nil {
		t.Fatalf("Decode() unexpected error %v", err)
	}
	if val.Kind != resp.KindNull {
		t.Errorf("Decode() kind = %v, want null", val.Kind)
	}
}

func TestDecodeMap(t *testing.T) {
	d := resp.NewDecoder(strings.NewReader("%2\r\n+first\r\n:1\r\n+second\r\n:2\r\n"))

	val, err := d.Decode()
	if err != nil {
		t.Fatalf("Decode() unexpected error %v", err)
	}
	if val.Kind != resp.KindMap || len(val.Map) != 2 {
		t.Fatalf("Decode() = (%v, %d pairs), want map of 2", val.Kind, len(val.Map))
	}
	if string(val.Map[0].Key.Str) != "first" || val.Map[0].Value.Int != 1 {
		t.Errorf("first pair = (%q, %d)", val.Map[0].Key.Str, val.Map[0].Value.Int)
	}
	if string(val.Map[1].Key.Str) != "second" || val.Map[1].Value.Int != 2 {
		t.Errorf("second pair = (%q, %d)", val.Map[1].Key.Str, val.Map[1].Value.Int)
	}
}

func TestDecodeNegativeMapCount(t *testing.T) {
	d := resp.NewDecoder(strings.NewReader("%-1\r\n"))

	if _, err := d.Decode(); !errors.Is(err, resp.ErrBadCount) {
		t.Errorf("Decode() error = %v, want %v", err, resp.ErrBadCount)
	}
}

func TestDecodeNullAndNil(t *testing.T) {
	d := resp.NewDecoder(strings.NewReader("_\r\n~\r\n"))

	val, err := d.Decode()
	if err != nil || val.Kind != resp.KindNull {
		t.Errorf("Decode(_) = (%v), err %v, want null", val.Kind, err)
	}

	val, err = d.Decode()
	if err != nil || val.Kind != resp.KindNil {
		t.Errorf("Decode(~) = (%v), err %v, want nil marker", val.Kind, err)
	}
}

func TestDecodeErrorFrames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Simple error", "-ERR something went wrong\r\n", "ERR something went wrong"},
		{"Bulk error", "!21\r\nSYNTAX invalid syntax\r\n", "SYNTAX invalid syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(tt.input))

			_, err := d.Decode()

			var wireErr *resp.WireError
			if !errors.As(err, &wireErr) {
				t.Fatalf("Decode() error = %v, want WireError", err)
			}
			if wireErr.Message != tt.want {
				t.Errorf("WireError message = %q, want %q", wireErr.Message, tt.want)
			}
		})
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	d := resp.NewDecoder(strings.NewReader("@oops\r\n"))

	if _, err := d.Decode(); !errors.Is(err, resp.ErrUnknownTag) {
		t.Errorf("Decode() error = %v, want %v", err, resp.ErrUnknownTag)
	}
}

func TestDecodeOversizeDeclarations(t *testing.T) {
	// declared counts and lengths must be rejected before any
	// allocation sized by them; none of these may take down the decoder
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"Array count beyond limit", "*9000000000000000000\r\n", resp.ErrBadCount},
		{"Map count beyond limit", "%9000000000000000000\r\n", resp.ErrBadCount},
		{"Bulk length beyond limit", "$9223372036854775805\r\nabc\r\n", resp.ErrBulkLength},
		{"Bulk length overflowing the parser", "$99999999999999999999\r\n", resp.ErrBadCount},
		{"Nested oversize array", "*1\r\n*9000000000000000000\r\n", resp.ErrBadCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(tt.input))

			if _, err := d.Decode(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSerializeCommandRoundTrip(t *testing.T) {
	raw, err := resp.SerializeCommand("SET", []resp.Value{
		resp.MakeBulkString("key"),
		resp.MakeBulkString("value"),
	})
	if err != nil {
		t.Fatalf("SerializeCommand() failed: %v", err)
	}

	want := "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$5\r\nvalue\r\n"
	if string(raw) != want {
		t.Errorf("SerializeCommand() = %q, want %q", raw, want)
	}

	cmd, err := resp.NewDecoder(bytes.NewReader(raw)).DecodeCommand()
	if err != nil {
		t.Fatalf("DecodeCommand() failed: %v", err)
	}
	if !slices.Equal(cmd, []string{"SET", "key", "value"}) {
		t.Errorf("DecodeCommand() = %v", cmd)
	}
}

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr error
	}{
		{
			name:  "SET command",
			input: "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$5\r\nvalue\r\n",
			want:  []string{"SET", "key", "value"},
		},
		{
			name:  "Empty array",
			input: "*0\r\n",
			want:  []string{},
		},
		{
			name:    "Not an array",
			input:   "+PING\r\n",
			wantErr: resp.ErrNotCommand,
		},
		{
			name:    "Non-string element",
			input:   "*1\r\n:42\r\n",
			wantErr: resp.ErrNotCommand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(tt.input))

			cmd, err := d.DecodeCommand()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("DecodeCommand() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeCommand() unexpected error %v", err)
			}

			if len(cmd) != len(tt.want) {
				t.Fatalf("DecodeCommand() = %v, want %v", cmd, tt.want)
			}
			for i := range cmd {
				if cmd[i] != tt.want[i] {
					t.Errorf("DecodeCommand()[%d] = %q, want %q", i, cmd[i], tt.want[i])
				}
			}
		})
	}
}

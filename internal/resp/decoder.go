package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	ErrInvalidEnding = errors.New("resp: invalid line ending")
	ErrUnknownTag    = errors.New("resp: unknown type tag")
	ErrBadInteger    = errors.New("resp: malformed integer")
	ErrBadDouble     = errors.New("resp: malformed double")
	ErrBadBoolean    = errors.New("resp: malformed boolean")
	ErrBulkLength    = errors.New("resp: bulk length mismatch")
	ErrBadCount      = errors.New("resp: malformed aggregate count")
	ErrNotCommand    = errors.New("resp: request is not an array of strings")
)

// Declared sizes are bounded before anything is allocated for them; a
// frame claiming more than this is malformed, not merely large.
const (
	maxBulkLength = 512 << 20 // bytes per bulk payload
	maxCount      = 1 << 20   // elements per aggregate
)

// WireError carries the text of an Error or BulkError frame met while
// decoding. Error frames never decode into a Value; they always fail
// the decode call with the message they carry.
type WireError struct {
	Message string
}

func (e *WireError) Error() string {
	return "resp: error reply: " + e.Message
}

// Decoder reads values frame by frame from an input stream.
type Decoder struct {
	rd *bufio.Reader
}

func NewDecoder(rd io.Reader) *Decoder {
	return &Decoder{rd: bufio.NewReader(rd)}
}

// Buffered returns the number of bytes that can be read from the current buffer
func (d *Decoder) Buffered() int {
	return d.rd.Buffered()
}

// Decode consumes exactly one value, recursing into aggregates.
// Any failure is fatal to this call; no partial value is returned.
func (d *Decoder) Decode() (Value, error) {
	tag, err := d.rd.ReadByte()
	if err != nil {
		return Value{}, err
	}

	switch tag {
	case TagSimpleString:
		line, err := d.readLine()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindSimpleString, Str: line}, nil

	case TagError:
		line, err := d.readLine()
		if err != nil {
			return Value{}, err
		}
		return Value{}, &WireError{Message: string(line)}

	case TagInteger:
		line, err := d.readLine()
		if err != nil {
			return Value{}, err
		}
		n, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q", ErrBadInteger, line)
		}
		return MakeInteger(n), nil

	case TagDouble:
		line, err := d.readLine()
		if err != nil {
			return Value{}, err
		}
		f, err := strconv.ParseFloat(string(line), 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q", ErrBadDouble, line)
		}
		return MakeDouble(f), nil

	case TagBoolean:
		line, err := d.readLine()
		if err != nil {
			return Value{}, err
		}
		switch {
		case len(line) == 1 && line[0] == 't':
			return MakeBoolean(true), nil
		case len(line) == 1 && line[0] == 'f':
			return MakeBoolean(false), nil
		}
		return Value{}, fmt.Errorf("%w: %q", ErrBadBoolean, line)

	case TagNull:
		if _, err := d.readLine(); err != nil {
			return Value{}, err
		}
		return MakeNull(), nil

	case TagNil:
		// emitted by the encoder only, but accepted for symmetry
		if _, err := d.readLine(); err != nil {
			return Value{}, err
		}
		return MakeNil(), nil

	case TagBulkString:
		payload, null, err := d.readBulk()
		if err != nil {
			return Value{}, err
		}
		if null {
			return MakeNull(), nil
		}
		return Value{Kind: KindBulkString, Str: payload}, nil

	case TagBulkError:
		payload, null, err := d.readBulk()
		if err != nil {
			return Value{}, err
		}
		if null {
			return Value{}, fmt.Errorf("%w: negative bulk error length", ErrBadCount)
		}
		return Value{}, &WireError{Message: string(payload)}

	case TagArray:
		n, err := d.readCount()
		if err != nil {
			return Value{}, err
		}
		if n == -1 {
			return MakeNull(), nil
		}
		if n < 0 || n > maxCount {
			return Value{}, fmt.Errorf("%w: array count %d out of range", ErrBadCount, n)
		}
		elems := make([]Value, 0, min(n, 1024))
		for i := 0; i < n; i++ {
			el, err := d.Decode()
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, el)
		}
		return MakeArray(elems), nil

	case TagMap:
		n, err := d.readCount()
		if err != nil {
			return Value{}, err
		}
		if n < 0 || n > maxCount {
			return Value{}, fmt.Errorf("%w: map count %d out of range", ErrBadCount, n)
		}
		pairs := make([]Pair, 0, min(n, 1024))
		for i := 0; i < n; i++ {
			key, err := d.Decode()
			if err != nil {
				return Value{}, err
			}
			val, err := d.Decode()
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: key, Value: val})
		}
		return MakeMap(pairs), nil
	}

	return Value{}, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
}

// DecodeCommand reads one client request: a top-level array of bulk
// strings, returned as command name plus arguments. An empty array
// yields an empty slice and no error.
func (d *Decoder) DecodeCommand() ([]string, error) {
	v, err := d.Decode()
	if err != nil {
		return nil, err
	}
	if v.Kind != KindArray {
		return nil, ErrNotCommand
	}

	cmd := make([]string, 0, len(v.Array))
	for _, el := range v.Array {
		switch el.Kind {
		case KindBulkString, KindSimpleString:
			cmd = append(cmd, string(el.Str))
		default:
			return nil, ErrNotCommand
		}
	}
	return cmd, nil
}

// readLine reads up to the frame terminator and strips it
func (d *Decoder) readLine() ([]byte, error) {
	line, err := d.rd.ReadBytes('\n')
	if err != nil {
		return nil, err
	}

	if len(line) < 2 || line[len(line)-2] != '\r' {
		return nil, ErrInvalidEnding
	}

	return line[:len(line)-2], nil
}

// readCount parses the declared element/pair count of an aggregate frame
func (d *Decoder) readCount() (int, error) {
	line, err := d.readLine()
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(string(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadCount, line)
	}
	return n, nil
}

// readBulk reads a length-prefixed payload and its terminator. A
// declared length of -1 reports null; any other disagreement between
// the declared and captured length is fatal.
func (d *Decoder) readBulk() ([]byte, bool, error) {
	n, err := d.readCount()
	if err != nil {
		return nil, false, err
	}
	if n == -1 {
		return nil, true, nil
	}
	if n < 0 {
		return nil, false, fmt.Errorf("%w: negative bulk length %d", ErrBadCount, n)
	}
	if n > maxBulkLength {
		return nil, false, fmt.Errorf("%w: declared %d bytes", ErrBulkLength, n)
	}

	buf := make([]byte, n+2)
	if _, err := io.ReadFull(d.rd, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, false, fmt.Errorf("%w: declared %d bytes", ErrBulkLength, n)
		}
		return nil, false, err
	}
	if !bytes.HasSuffix(buf, []byte("\r\n")) {
		return nil, false, fmt.Errorf("%w: declared %d bytes", ErrBulkLength, n)
	}

	return buf[:n], false, nil
}

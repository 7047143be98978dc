package resp

import (
	"bufio"
	"io"
	"strconv"
)

const (
	// Error messages shorter than this are collapsed to genericErrorText.
	// Kept verbatim for compatibility with existing clients.
	shortErrorLen = 10

	genericErrorText    = "Unknown error"
	unsupportedTypeText = "Unsupported data type"
)

// Encoder handles the serialization of Value objects into an output stream.
// Encoding never fails on the value itself, only on the underlying writer.
type Encoder struct {
	writer *bufio.Writer
}

// NewEncoder initializes an Encoder with a buffered writer
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		writer: bufio.NewWriter(w)}
}

// Encode serializes a Value and flushes it to the underlying stream
func (e *Encoder) Encode(v Value) error {
	if err := e.write(v); err != nil {
		return err
	}
	return e.writer.Flush()
}

// Write serializes a Value into the buffer without flushing. Reply
// loops use it to batch pipelined responses and flush once the input
// is drained.
func (e *Encoder) Write(v Value) error {
	return e.write(v)
}

// Flush sends all buffered data to the underlying writer
func (e *Encoder) Flush() error {
	return e.writer.Flush()
}

func (e *Encoder) write(v Value) error {
	switch v.Kind {
	case KindInteger:
		return e.writeHeader(TagInteger, v.Int)

	case KindDouble:
		return e.writeRaw(TagDouble, strconv.AppendFloat(nil, v.Float, 'g', -1, 64))

	case KindSimpleString:
		return e.writeRaw(TagSimpleString, v.Str)

	case KindBulkString:
		return e.writeBulk(TagBulkString, v.Str)

	case KindBoolean:
		payload := []byte{'f'}
		if v.Bool {
			payload[0] = 't'
		}
		return e.writeRaw(TagBoolean, payload)

	case KindNull:
		return e.writeRaw(TagNull, nil)

	case KindNil:
		return e.writeRaw(TagNil, nil)

	case KindError:
		// messages below the threshold collapse to a generic reply
		if len(v.Str) < shortErrorLen {
			return e.writeRaw(TagError, []byte(genericErrorText))
		}
		return e.writeBulk(TagBulkError, v.Str)

	case KindBulkError:
		return e.writeBulk(TagBulkError, v.Str)

	case KindArray:
		if err := e.writeHeader(TagArray, int64(len(v.Array))); err != nil {
			return err
		}
		for _, el := range v.Array {
			if err := e.write(el); err != nil {
				return err
			}
		}
		return nil

	case KindMap:
		if err := e.writeHeader(TagMap, int64(len(v.Map))); err != nil {
			return err
		}
		for _, p := range v.Map {
			if err := e.write(p.Key); err != nil {
				return err
			}
			if err := e.write(p.Value); err != nil {
				return err
			}
		}
		return nil
	}

	// anything outside the supported set goes out as a bulk error
	return e.writeBulk(TagBulkError, []byte(unsupportedTypeText))
}

// writeHeader writes the type prefix, numeric value, and the terminator
func (e *Encoder) writeHeader(prefix byte, n int64) error {
	if err := e.writer.WriteByte(prefix); err != nil {
		return err
	}
	e.appendInt(n)
	_, err := e.writer.WriteString("\r\n")
	return err
}

// writeRaw writes the type prefix, raw bytes, and the terminator
func (e *Encoder) writeRaw(prefix byte, b []byte) error {
	if err := e.writer.WriteByte(prefix); err != nil {
		return err
	}
	if _, err := e.writer.Write(b); err != nil {
		return err
	}
	_, err := e.writer.WriteString("\r\n")
	return err
}

// writeBulk writes a length-prefixed payload with its own terminator line
func (e *Encoder) writeBulk(prefix byte, b []byte) error {
	if err := e.writeHeader(prefix, int64(len(b))); err != nil {
		return err
	}
	if _, err := e.writer.Write(b); err != nil {
		return err
	}
	_, err := e.writer.WriteString("\r\n")
	return err
}

// appendInt converts an integer to a string and writes it to the buffer
func (e *Encoder) appendInt(n int64) {
	b := e.writer.AvailableBuffer()
	b = strconv.AppendInt(b, n, 10)
	e.writer.Write(b) //nolint:errcheck
}

package resp

// Frame type tags as they appear on the wire.
const (
	TagSimpleString = '+'
	TagError        = '-'
	TagInteger      = ':'
	TagBulkString   = '$'
	TagDouble       = ','
	TagBoolean      = '#'
	TagArray        = '*'
	TagMap          = '%'
	TagNull         = '_'
	TagBulkError    = '!'
	TagNil          = '~'
)

// Kind identifies the variant held by a Value.
type Kind byte

const (
	KindInvalid Kind = iota
	KindSimpleString
	KindBulkString
	KindInteger
	KindDouble
	KindBoolean
	KindNull
	KindNil // absent-value marker, distinct from Null
	KindError
	KindBulkError
	KindArray
	KindMap
)

// Value is the tagged value model exchanged between the codec and the
// command layer. A Value owns all of its nested values and is built
// fresh per decode/encode call.
type Value struct {
	Kind  Kind
	Str   []byte  // SimpleString, BulkString, Error, BulkError
	Int   int64   // Integer
	Float float64 // Double
	Bool  bool    // Boolean
	Array []Value // Array
	Map   []Pair  // Map, insertion order preserved
}

// Pair is one key/value entry of a Map value. The codec does not
// require keys to be unique.
type Pair struct {
	Key   Value
	Value Value
}

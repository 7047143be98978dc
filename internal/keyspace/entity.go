package keyspace

// DataType tags the runtime variant stored under a key.
type DataType byte

const (
	TypeString DataType = iota + 1
	TypeList
	TypeSet
	TypeZSet
)

// String returns the type tag as reported by the TYPE command.
func (t DataType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeSet:
		return "set"
	case TypeZSet:
		return "zset"
	}
	return "none"
}

// Entity generic container for a stored value
type Entity struct {
	Type  DataType
	Value any
}

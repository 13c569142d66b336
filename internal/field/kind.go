// Package field describes fixed-layout records field by field and converts each field
// between its live form and its portable save form.
//
// Every record kind has one Layout: an ordered, immutable list of Descriptors built
// once at startup. A descriptor knows its field's kind and how to reach the field in
// a record value. Scalars pass through unchanged; strings and code references become
// a length in the record's fixed block followed by trailing payload bytes; object
// references become indices into the session's tables.
package field

// Kind selects the conversion rule of a field.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindFloat
	KindVector
	KindString
	KindEntity
	KindClient
	KindItem
	KindCallback
	KindSequence
	KindIgnore
)

var kindNames = [...]string{
	KindInt:      "int",
	KindFloat:    "float",
	KindVector:   "vector",
	KindString:   "string",
	KindEntity:   "entity",
	KindClient:   "client",
	KindItem:     "item",
	KindCallback: "callback",
	KindSequence: "sequence",
	KindIgnore:   "ignore",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "invalid"
}

// Width is the size of the kind's slot in a record's fixed block.
func (k Kind) Width() int {
	if k == KindVector {
		return 12
	}
	return 4
}

// Flags modify how a descriptor is treated.
type Flags uint8

const (
	// Transient marks spawn-time-only fields. They are never written and never read.
	Transient Flags = 1 << iota
)

const (
	// MaxNameLen bounds a callback or sequence name on disk, terminator included.
	MaxNameLen = 2048

	// MaxStringLen bounds a string payload on disk, terminator included.
	MaxStringLen = 1 << 20

	// StringSlack extra bytes are allocated past every loaded string.
	StringSlack = 32

	// NilIndex is stored for nil object references.
	NilIndex int32 = -1
)

package schema

// Kind identifies the declared type of a record field.
type Kind uint8

const (
	KindBool Kind = iota
	KindByte
	KindShort
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindChar
	KindString
	KindList
	KindMap
	KindEnum
	KindOptional
	KindStruct
)

var kindNames = [...]string{
	KindBool:     "bool",
	KindByte:     "byte",
	KindShort:    "short",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindChar:     "char",
	KindString:   "string",
	KindList:     "list",
	KindMap:      "map",
	KindEnum:     "enum",
	KindOptional: "optional",
	KindStruct:   "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether k is one of the flat scalar kinds the codec
// serializes. The remaining kinds exist so callers can declare them and get
// a precise rejection from the engines.
func (k Kind) IsScalar() bool {
	return k <= KindString
}

// Annotation adjusts the wire representation of an integer field.
type Annotation uint8

const (
	// AnnotationVarInt requests variable-length encoding of the raw value.
	AnnotationVarInt Annotation = iota
	// AnnotationVarUInt requests zigzag mapping before variable-length
	// encoding, which keeps small negative values short.
	AnnotationVarUInt
)

var annotationNames = [...]string{
	AnnotationVarInt:  "varint",
	AnnotationVarUInt: "varuint",
}

func (a Annotation) String() string {
	if int(a) < len(annotationNames) {
		return annotationNames[a]
	}
	return "unknown"
}

// VarIntMode is the resolved wire representation of an integer field.
type VarIntMode uint8

const (
	// VarNone leaves the field fixed-width big-endian.
	VarNone VarIntMode = iota
	// VarSigned encodes the raw bit pattern as a varint.
	VarSigned
	// VarZigzag zigzag-maps the value, then encodes it as a varint.
	VarZigzag
)

var varIntModeNames = [...]string{
	VarNone:   "none",
	VarSigned: "signed",
	VarZigzag: "zigzag",
}

func (m VarIntMode) String() string {
	if int(m) < len(varIntModeNames) {
		return varIntModeNames[m]
	}
	return "unknown"
}

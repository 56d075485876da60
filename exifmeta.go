// Package exifmeta holds the types shared by the EXIF reader: TIFF field
// types, tag identifiers and the static registry that names them, and the
// ordered set of decoded tags produced for one image.
//
// The reader itself lives in the jpeg and tiff packages and the assembled
// per-file result in the meta package.
package exifmeta

import (
	"strconv"
)

//go:generate go run ./cmd/codegen -o exifid/exifid.go

// Tag is a single decoded directory entry whose ID is known to the registry.
type Tag struct {
	ID   ID
	Type Type
	// Name is the registry name of ID.
	Name string
	// Value is the textual rendering of the entry's value.
	Value string
}

// String returns a human readable representation of the tag and its value.
func (t Tag) String() string {
	return t.Name + " (" + t.Type.String() + "): " + t.Value
}

// Type is the set of all field types one may encounter when parsing EXIF data.
type Type uint16

const (
	_ Type = iota
	// TypeUint8 can be found as BYTE type in the EXIF standard.
	TypeUint8
	// TypeString a.k.a. ASCII.
	TypeString
	// TypeUint16 a.k.a. SHORT.
	TypeUint16
	// TypeUint32 a.k.a. LONG.
	TypeUint32
	// Unsigned rational type.
	TypeURational64
	TypeInt8
	TypeUndefined
	TypeInt16
	TypeInt32
	// Signed rational type.
	TypeRational64
	TypeFloat32
	// TypeFloat64 can be found as the DOUBLE type in the EXIF standard.
	TypeFloat64
)

// Size returns the size in bytes of the type. Can be 1, 2, 4, or 8 for valid types. 0 otherwise.
func (tp Type) Size() (s uint8) {
	switch tp {
	case TypeInt8, TypeUint8, TypeString, TypeUndefined:
		s = 1
	case TypeUint16, TypeInt16:
		s = 2
	case TypeUint32, TypeInt32, TypeFloat32:
		s = 4
	case TypeRational64, TypeFloat64, TypeURational64:
		s = 8
	default:
		s = 0 // Invalid type.
	}
	return s
}

// String returns a Go-like representation of the type.
func (tp Type) String() (s string) {
	switch tp {
	case TypeUint8:
		s = "uint8"
	case TypeString:
		s = "string"
	case TypeUint16:
		s = "uint16"
	case TypeUint32:
		s = "uint32"
	case TypeUndefined:
		s = "undefined"
	case TypeInt16:
		s = "int16"
	case TypeInt32:
		s = "int32"
	case TypeInt8:
		s = "int8"
	case TypeFloat32:
		s = "float32"
	case TypeFloat64:
		s = "float64"
	case TypeURational64:
		s = "urational"
	case TypeRational64:
		s = "rational"
	default:
		s = "unknown"
	}
	return s
}

// ID is a 16 bit EXIF/TIFF tag identifier.
type ID uint16

// Name returns the registry name of the ID. ok is false for IDs the
// registry does not know.
func (id ID) Name() (name string, ok bool) {
	def, ok := tags[id]
	return def.Name, ok
}

// String returns the camel case name of the ID, or its hexadecimal value
// if the ID is not registered.
func (id ID) String() string {
	if name, ok := id.Name(); ok {
		return name
	}
	return "0x" + leftPad(strconv.FormatUint(uint64(id), 16), 4)
}

// IsPointer reports whether the ID's value is the offset of a sub-IFD.
func (id ID) IsPointer() bool {
	return tags[id].pointer
}

func leftPad(s string, n int) string {
	for len(s) < n {
		s = "0" + s
	}
	return s
}

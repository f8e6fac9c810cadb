package shadertype

import (
	"fmt"
	"strings"
)

// Type is the canonical, immutable representation of a shader type.
// Values are produced by a Registry; equal structures share one pointer.
type Type interface {
	String() string
	isType()
}

// ScalarKind enumerates the scalar base types.
type ScalarKind uint8

const (
	KindBool ScalarKind = iota
	KindInt
	KindUInt
	KindFloat
)

// String returns the GLSL-style name of the scalar kind.
func (k ScalarKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUInt:
		return "uint"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Scalar is a single-component numeric or boolean type.
type Scalar struct {
	Kind ScalarKind
}

func (*Scalar) isType() {}

func (t *Scalar) String() string { return t.Kind.String() }

// Canonical scalar singletons. The Registry hands these out; they are
// also usable directly wherever a registry is not in play.
var (
	BoolType  = &Scalar{Kind: KindBool}
	IntType   = &Scalar{Kind: KindInt}
	UIntType  = &Scalar{Kind: KindUInt}
	FloatType = &Scalar{Kind: KindFloat}
)

// Vector is a column of 2..4 scalar components.
type Vector struct {
	Scalar *Scalar
	Size   uint32
}

func (*Vector) isType() {}

func (t *Vector) String() string {
	return fmt.Sprintf("%svec%d", scalarPrefix(t.Scalar.Kind), t.Size)
}

// Matrix is a column-major matrix of scalar components.
type Matrix struct {
	Scalar *Scalar
	Cols   uint32
	Rows   uint32
}

func (*Matrix) isType() {}

func (t *Matrix) String() string {
	return fmt.Sprintf("%smat%dx%d", scalarPrefix(t.Scalar.Kind), t.Cols, t.Rows)
}

func scalarPrefix(k ScalarKind) string {
	switch k {
	case KindBool:
		return "b"
	case KindInt:
		return "i"
	case KindUInt:
		return "u"
	default:
		return ""
	}
}

// Array is a fixed-size array of a single element type.
type Array struct {
	Element Type
	Size    uint32
}

func (*Array) isType() {}

func (t *Array) String() string {
	return fmt.Sprintf("%s[%d]", t.Element, t.Size)
}

// Member is one named field of a Struct.
type Member struct {
	Name string
	Type Type
}

// Struct is an aggregate of named members.
type Struct struct {
	Members []Member
}

func (*Struct) isType() {}

func (t *Struct) String() string {
	var sb strings.Builder
	sb.WriteString("struct { ")
	for i, m := range t.Members {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s %s", m.Type, m.Name)
	}
	sb.WriteString(" }")
	return sb.String()
}

// TextureShape enumerates the texture shapes an image type can bind to.
// It is consumed only when decoding OpTypeImage instructions.
type TextureShape uint8

const (
	Shape1D TextureShape = iota
	Shape1DArray
	Shape2D
	Shape2DArray
	Shape3D
	ShapeCube
	ShapeCubeArray
	ShapeBuffer
)

// String returns the GLSL-style shape suffix.
func (s TextureShape) String() string {
	switch s {
	case Shape1D:
		return "1D"
	case Shape1DArray:
		return "1DArray"
	case Shape2D:
		return "2D"
	case Shape2DArray:
		return "2DArray"
	case Shape3D:
		return "3D"
	case ShapeCube:
		return "Cube"
	case ShapeCubeArray:
		return "CubeArray"
	case ShapeBuffer:
		return "Buffer"
	default:
		return "?"
	}
}

// Access describes how a storage image may be accessed.
type Access uint8

const (
	AccessUnknown Access = iota
	AccessReadOnly
	AccessWriteOnly
	AccessReadWrite
)

// Image is a texture resource without an attached sampler.
type Image struct {
	Shape  TextureShape
	Access Access
}

func (*Image) isType() {}

func (t *Image) String() string { return "image" + t.Shape.String() }

// SampledImage is a texture combined with a sampler.
type SampledImage struct {
	Shape TextureShape
}

func (*SampledImage) isType() {}

func (t *SampledImage) String() string { return "sampler" + t.Shape.String() }

// Sampler is a sampler not bound to a particular image.
type Sampler struct{}

func (*Sampler) isType() {}

func (t *Sampler) String() string { return "sampler" }

// SamplerType is the canonical bare sampler.
var SamplerType = &Sampler{}

// ParameterLocations returns the number of consecutive interface-
// location slots a uniform parameter of type t occupies. Matrices take
// one slot per column, arrays multiply by their length, structs sum
// their members. A nil (void/unknown) type takes a single slot.
func ParameterLocations(t Type) int {
	switch t := t.(type) {
	case *Matrix:
		return int(t.Cols)
	case *Array:
		return int(t.Size) * ParameterLocations(t.Element)
	case *Struct:
		n := 0
		for _, m := range t.Members {
			n += ParameterLocations(m.Type)
		}
		return n
	case nil:
		return 1
	default:
		return 1
	}
}

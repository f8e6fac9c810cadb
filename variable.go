package spvlink

import "github.com/gogpu/spvlink/shadertype"

// Variable is an exported view of one interface variable: a non-built-in
// Input, Output or UniformConstant definition that survived all rewrite
// passes.
type Variable struct {
	// Name is the variable's debug name.
	Name string

	// Type is the canonical pointee type of the variable.
	Type shadertype.Type

	// Location is the interface location slot, or -1 if unassigned.
	Location int
}

// HasLocation reports whether the variable carries a location.
func (v Variable) HasLocation() bool {
	return v.Location >= 0
}

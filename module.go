package spvlink

import (
	"github.com/gogpu/spvlink/shadertype"
	"github.com/gogpu/spvlink/spirv"
)

// legacyGlobalBlockName is the struct name the HLSL front end of
// glslang gives the aggregate block it wraps free-standing uniforms in.
const legacyGlobalBlockName = "$Global"

// PrimaryPositionNames lists the conventional names of the primary
// vertex position input. An unlocated vertex input with one of these
// names is pinned to location 0 when that slot is free.
var PrimaryPositionNames = []string{"position", "vertex", "a_position"}

// Module is one normalized shader stage: its minimized instruction
// stream plus the interface variables it declares. A Module is
// immutable except through LinkInputs and RemapParameterLocations.
type Module struct {
	stage  Stage
	stream *spirv.InstructionStream

	inputs     []Variable
	outputs    []Variable
	parameters []Variable
}

// NewModule processes a stream of SPIR-V words as follows:
//   - All the definitions are parsed out (requires debug info present).
//   - A legacy $Global uniform block is unwrapped into discrete uniforms.
//   - Every input, output and uniform gets a location index assigned.
//   - The lists of inputs, outputs and parameters are built up.
//   - Debugging information is stripped from the module.
//
// Construction failure is final for the stage: the error is logged and
// no module is returned.
func NewModule(stage Stage, words []uint32, reg *shadertype.Registry) (*Module, error) {
	m := &Module{
		stage:  stage,
		stream: spirv.NewInstructionStream(words),
	}

	defs, err := parseModule(m.stream, reg, stage)
	if err != nil {
		Logger().Error("failed to parse SPIR-V shader code", "stage", stage, "err", err)
		return nil, err
	}

	// Unwrap a $Global uniform block back down to individual uniforms,
	// if one exists.
	for id := uint32(0); int(id) < defs.len(); id++ {
		def := defs.at(id)
		if td, ok := def.state.(typeDef); ok && def.name == legacyGlobalBlockName {
			if _, isStruct := td.typ.(*shadertype.Struct); isStruct {
				m.unwrapUniformBlock(defs, id)
			}
		}
	}

	// Add in location decorations for any interface variables missing
	// one.
	m.assignLocations(defs)

	// Identify the inputs, outputs and uniform parameters.
	for id := uint32(0); int(id) < defs.len(); id++ {
		def := defs.at(id)
		v, ok := def.state.(variableDef)
		if !ok || def.builtIn != spirv.BuiltInNone {
			continue
		}
		variable := Variable{
			Name:     def.name,
			Type:     v.typ,
			Location: def.location,
		}
		switch v.class {
		case spirv.StorageClassInput:
			m.inputs = append(m.inputs, variable)
		case spirv.StorageClassOutput:
			m.outputs = append(m.outputs, variable)
		case spirv.StorageClassUniformConstant:
			m.parameters = append(m.parameters, variable)
		}
	}

	// The debugging information served its purpose; strip it from the
	// module.
	m.stream = m.stream.Strip()

	return m, nil
}

// LoadBytes constructs a module from a little-endian SPIR-V binary.
func LoadBytes(stage Stage, data []byte, reg *shadertype.Registry) (*Module, error) {
	stream, err := spirv.StreamFromBytes(data)
	if err != nil {
		return nil, errorf(ErrInvalidHeader, stage, 0, "%v", err)
	}
	return NewModule(stage, stream.Words(), reg)
}

// Stage returns the pipeline stage this module belongs to.
func (m *Module) Stage() Stage {
	return m.stage
}

// Inputs returns the Input-storage interface variables in definition
// order.
func (m *Module) Inputs() []Variable {
	return m.inputs
}

// Outputs returns the Output-storage interface variables in definition
// order.
func (m *Module) Outputs() []Variable {
	return m.outputs
}

// Parameters returns the UniformConstant-storage parameters in
// definition order.
func (m *Module) Parameters() []Variable {
	return m.parameters
}

// Words returns the module's final (stripped) word stream.
func (m *Module) Words() []uint32 {
	return m.stream.Words()
}

// Bytes serializes the module to a little-endian SPIR-V binary, ready
// for consumption by a graphics driver.
func (m *Module) Bytes() []byte {
	return m.stream.Bytes()
}

// findOutput returns the index of the output with the given name, or -1.
func (m *Module) findOutput(name string) int {
	for i, out := range m.outputs {
		if out.Name == name {
			return i
		}
	}
	return -1
}

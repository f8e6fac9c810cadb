package spvlink

import "github.com/gogpu/spvlink/spirv"

// LinkInputs matches every input of this module against the same-named
// output of the given previous pipeline stage and remaps this module's
// input locations so producer and consumer agree.
//
// On failure nothing is modified: neither module's bytes change and no
// partial remap is applied. On success every input's location equals
// its matched output's location.
func (m *Module) LinkInputs(previous *Module) error {
	if previous.stage >= m.stage {
		return errorf(ErrStageOrder, m.stage, 0,
			"stage %s does not precede stage %s", previous.stage, m.stage)
	}

	locationRemap := make(map[int]int)

	for _, input := range m.inputs {
		i := previous.findOutput(input.Name)
		if i < 0 {
			return errorf(ErrUnlinkedInput, m.stage, 0,
				"input %q does not match any output in stage %s", input.Name, previous.stage)
		}

		output := previous.outputs[i]
		if !output.HasLocation() {
			return errorf(ErrUnlocatedOutput, previous.stage, 0,
				"output %q has no output location", input.Name)
		}

		if !input.HasLocation() || output.Location != input.Location {
			locationRemap[input.Location] = output.Location
		}
	}

	if len(locationRemap) > 0 {
		m.remapLocations(spirv.StorageClassInput, locationRemap)
		for i := range m.inputs {
			if to, ok := locationRemap[m.inputs[i].Location]; ok {
				m.inputs[i].Location = to
			}
		}
	}
	return nil
}

// RemapParameterLocations moves UniformConstant parameters with a
// location in the map to the mapped location. Locations not included in
// the map remain untouched. The exported parameter list is updated to
// match.
func (m *Module) RemapParameterLocations(locations map[int]int) {
	m.remapLocations(spirv.StorageClassUniformConstant, locations)

	for i := range m.parameters {
		p := &m.parameters[i]
		if !p.HasLocation() {
			continue
		}
		if to, ok := locations[p.Location]; ok {
			p.Location = to
		}
	}
}

// operandRef addresses one operand word of one instruction.
type operandRef struct {
	cursor spirv.Cursor
	index  int
}

// remapLocations rewrites the location decorations of every variable of
// the given storage class according to the map. Only variables that
// already carry a location decoration are affected; assignLocations has
// run during construction, so all interface variables do.
func (m *Module) remapLocations(class spirv.StorageClass, locations map[int]int) {
	// Location decoration operands seen so far, keyed by decorated ID.
	decorations := make(map[uint32]operandRef)

	for it := m.stream.Begin(); !it.End(); it = it.Next() {
		switch it.Opcode() {
		case spirv.OpDecorate:
			if it.NumOperands() >= 3 && spirv.Decoration(it.Operand(1)) == spirv.DecorationLocation {
				decorations[it.Operand(0)] = operandRef{cursor: it, index: 2}
			}

		case spirv.OpVariable:
			if spirv.StorageClass(it.Operand(2)) != class {
				continue
			}
			// Found a variable of the right class; was a location
			// decoration recorded for it, and does the map move it?
			ref, ok := decorations[it.Operand(1)]
			if !ok {
				continue
			}
			if to, ok := locations[int(ref.cursor.Operand(ref.index))]; ok {
				ref.cursor.SetOperand(ref.index, uint32(to))
			}
		}
	}
}

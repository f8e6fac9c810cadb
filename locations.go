package spvlink

import (
	"slices"

	"github.com/gogpu/spvlink/shadertype"
	"github.com/gogpu/spvlink/spirv"
)

// locationSet tracks which interface-location slots are occupied for
// one storage class. Bits beyond the backing array read as free.
type locationSet struct {
	words []uint64
}

func (b *locationSet) grow(i int) {
	for len(b.words) <= i/64 {
		b.words = append(b.words, 0)
	}
}

func (b *locationSet) set(i int) {
	b.grow(i)
	b.words[i/64] |= 1 << (i % 64)
}

func (b *locationSet) get(i int) bool {
	if i/64 >= len(b.words) {
		return false
	}
	return b.words[i/64]&(1<<(i%64)) != 0
}

func (b *locationSet) setRange(start, n int) {
	for i := start; i < start+n; i++ {
		b.set(i)
	}
}

// anySet reports whether any of the n slots starting at start is taken.
func (b *locationSet) anySet(start, n int) bool {
	for i := start; i < start+n; i++ {
		if b.get(i) {
			return true
		}
	}
	return false
}

// lowestClear returns the lowest free slot.
func (b *locationSet) lowestClear() int {
	for i := 0; ; i++ {
		if !b.get(i) {
			return i
		}
	}
}

// nextDifferent returns the first slot above i whose occupancy differs
// from slot i's. When slot i is taken this always terminates, since
// slots past the backing array are free.
func (b *locationSet) nextDifferent(i int) int {
	v := b.get(i)
	for j := i + 1; ; j++ {
		if b.get(j) != v {
			return j
		}
	}
}

// annotationOpcodes is the contiguous block of header and annotation
// instructions that precedes all type, variable and function
// instructions. New decorations are inserted right after this block.
var annotationOpcodes = []spirv.Opcode{
	spirv.OpNop,
	spirv.OpCapability,
	spirv.OpExtension,
	spirv.OpExtInstImport,
	spirv.OpMemoryModel,
	spirv.OpEntryPoint,
	spirv.OpExecutionMode,
	spirv.OpString,
	spirv.OpSourceExtension,
	spirv.OpSource,
	spirv.OpSourceContinued,
	spirv.OpName,
	spirv.OpMemberName,
	spirv.OpModuleProcessed,
	spirv.OpDecorate,
	spirv.OpMemberDecorate,
	spirv.OpGroupDecorate,
	spirv.OpGroupMemberDecorate,
	spirv.OpDecorationGroup,
}

// assignLocations gives every non-built-in Input, Output or
// UniformConstant variable that has no location decoration yet a free
// slot, and inserts the matching OpDecorate instructions into the
// stream. Uniform parameters occupy one slot per parameter location of
// their type, so arrays and matrices reserve a contiguous run.
func (m *Module) assignLocations(defs *definitionTable) {
	// Determine which locations have already been assigned.
	hasUnassigned := false
	var inputLocations, outputLocations, uniformLocations locationSet

	for id := uint32(0); int(id) < defs.len(); id++ {
		def := defs.at(id)
		v, ok := def.state.(variableDef)
		if !ok {
			continue
		}
		if def.location < 0 {
			if def.builtIn == spirv.BuiltInNone &&
				(v.class == spirv.StorageClassInput ||
					v.class == spirv.StorageClassOutput ||
					v.class == spirv.StorageClassUniformConstant) {
				// A non-built-in variable definition without a location.
				hasUnassigned = true
			}
		} else if v.class == spirv.StorageClassInput {
			inputLocations.set(def.location)
		} else if v.class == spirv.StorageClassOutput {
			outputLocations.set(def.location)
		} else if v.class == spirv.StorageClassUniformConstant {
			uniformLocations.setRange(def.location, parameterLocations(v))
		}
	}

	if !hasUnassigned {
		return
	}

	// Find the end of the annotation block, so that we know where to
	// insert the new decorations.
	it := m.stream.Begin()
	for !it.End() && slices.Contains(annotationOpcodes, it.Opcode()) {
		it = it.Next()
	}

	// Now insert decorations for every unassigned variable.
	for id := uint32(0); int(id) < defs.len(); id++ {
		def := defs.at(id)
		v, ok := def.state.(variableDef)
		if !ok || def.location >= 0 || def.builtIn != spirv.BuiltInNone {
			continue
		}

		var location int
		switch v.class {
		case spirv.StorageClassInput:
			if m.stage == StageVertex && !inputLocations.get(0) {
				if slices.Contains(PrimaryPositionNames, def.name) {
					// Prefer assigning the vertex position to location 0.
					location = 0
				} else if !inputLocations.get(1) {
					location = 1
				} else {
					location = inputLocations.nextDifferent(1)
				}
			} else {
				location = inputLocations.lowestClear()
			}
			inputLocations.set(location)
			Logger().Debug("assigned input location", "name", def.name, "location", location)

		case spirv.StorageClassOutput:
			location = outputLocations.lowestClear()
			outputLocations.set(location)
			Logger().Debug("assigned output location", "name", def.name, "location", location)

		case spirv.StorageClassUniformConstant:
			n := parameterLocations(v)
			location = uniformLocations.lowestClear()
			for n > 1 && uniformLocations.anySet(location, n) {
				// Not enough free slots here; skip past the occupied
				// run to the next open one.
				next := uniformLocations.nextDifferent(location)
				location = uniformLocations.nextDifferent(next)
			}
			uniformLocations.setRange(location, n)
			Logger().Debug("assigned uniform locations",
				"name", def.name, "location", location, "count", n)

		default:
			continue
		}

		def.location = location
		it = m.stream.Insert(it, spirv.OpDecorate, []uint32{
			id,
			uint32(spirv.DecorationLocation),
			uint32(location),
		})
		it = it.Next()
	}
}

// parameterLocations returns the slot footprint of a variable. A
// typeless variable counts as one slot.
func parameterLocations(v variableDef) int {
	return shadertype.ParameterLocations(v.typ)
}

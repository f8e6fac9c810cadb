package spvlink

import (
	"fmt"

	"github.com/gogpu/spvlink/shadertype"
	"github.com/gogpu/spvlink/spirv"
)

// unwrapUniformBlock converts the members of the uniform block with the
// given type ID to discrete UniformConstant variables. The block's
// struct type, pointer type and variable are deleted from the stream,
// every access chain into the block is rewritten against the new member
// variables, and all names and decorations on deleted identifiers are
// removed.
//
// The block must only be reached through access chains; a direct load
// or copy of the whole block means the input is malformed in a way this
// pass cannot handle and is an internal failure.
func (m *Module) unwrapUniformBlock(defs *definitionTable, typeID uint32) {
	structType, ok := defs.at(typeID).typ().(*shadertype.Struct)
	if !ok {
		panic(fmt.Sprintf("spvlink: unwrap target %%%d is not a struct type", typeID))
	}

	deletedIDs := make(map[uint32]bool)
	// Result IDs of deleted single-index access chains, mapped to the
	// member variable later loads must be redirected to.
	deletedAccessChains := make(map[uint32]uint32)
	memberIDs := make([]uint32, len(structType.Members))

	it := m.stream.Begin()
	for !it.End() {
		op := it.Opcode()
		nargs := it.NumOperands()

		switch op {
		case spirv.OpName, spirv.OpMemberName, spirv.OpDecorate, spirv.OpMemberDecorate:
			// Delete debug names and decorations on the struct type.
			if nargs >= 1 && it.Operand(0) == typeID {
				it = m.stream.Erase(it)
				continue
			}

		case spirv.OpTypeStruct:
			// Delete the struct definition itself.
			if nargs >= 1 && it.Operand(0) == typeID {
				it = m.stream.Erase(it)
				continue
			}

		case spirv.OpTypePointer:
			if nargs >= 3 && it.Operand(2) == typeID {
				// Remember this pointer.
				deletedIDs[it.Operand(0)] = true
				it = m.stream.Erase(it)
				continue
			}

		case spirv.OpVariable:
			if nargs >= 3 && deletedIDs[it.Operand(0)] {
				// Delete this variable entirely, and replace it with
				// individual variable definitions for all its members.
				deletedIDs[it.Operand(1)] = true
				it = m.stream.Erase(it)

				for mi, member := range structType.Members {
					memberTypeID := findTypeID(defs, member.Type)
					if memberTypeID == 0 {
						panic(fmt.Sprintf("spvlink: no type definition for unwrapped member %q", member.Name))
					}

					pointerID := m.stream.AllocateID()
					it = m.stream.Insert(it, spirv.OpTypePointer, []uint32{
						pointerID,
						uint32(spirv.StorageClassUniformConstant),
						memberTypeID,
					})
					it = it.Next()
					defs.at(pointerID).state = typePointerDef{
						class:   spirv.StorageClassUniformConstant,
						pointee: member.Type,
					}

					variableID := m.stream.AllocateID()
					it = m.stream.Insert(it, spirv.OpVariable, []uint32{
						pointerID,
						variableID,
						uint32(spirv.StorageClassUniformConstant),
					})
					it = it.Next()
					def := defs.at(variableID)
					def.name = member.Name
					def.state = variableDef{
						typ:   member.Type,
						class: spirv.StorageClassUniformConstant,
					}

					memberIDs[mi] = variableID
				}
				continue
			}

		case spirv.OpAccessChain, spirv.OpInBoundsAccessChain:
			if nargs >= 4 && deletedIDs[it.Operand(2)] {
				index := defs.at(it.Operand(3)).constantValue()
				if nargs > 4 {
					// Just unwrap the first index: rebase onto the
					// member variable and keep the remaining indices.
					it.SetOperand(2, memberIDs[index])
					it = m.stream.EraseOperand(it, 3)
				} else {
					// Delete the access chain entirely; loads through
					// its result go to the member variable directly.
					deletedAccessChains[it.Operand(1)] = memberIDs[index]
					it = m.stream.Erase(it)
					continue
				}
			}

		case spirv.OpLoad:
			// Loading the whole block directly is not supported.
			if deletedIDs[it.Operand(2)] {
				panic("spvlink: direct load of unwrapped uniform block")
			}
			if target, ok := deletedAccessChains[it.Operand(2)]; ok {
				it.SetOperand(2, target)
			}

		case spirv.OpCopyMemory:
			// Copying the whole block directly is not supported.
			if deletedIDs[it.Operand(1)] {
				panic("spvlink: direct copy of unwrapped uniform block")
			}
			if target, ok := deletedAccessChains[it.Operand(1)]; ok {
				it.SetOperand(1, target)
			}
		}

		it = it.Next()
	}

	if len(deletedIDs) == 0 {
		return
	}

	// Go over the stream again now that all deleted IDs are known, to
	// remove any remaining names or decorations on them.
	it = m.stream.Begin()
	for !it.End() {
		op := it.Opcode()
		if (op == spirv.OpName || op == spirv.OpDecorate ||
			op == spirv.OpMemberName || op == spirv.OpMemberDecorate) &&
			it.NumOperands() >= 2 && deletedIDs[it.Operand(0)] {
			it = m.stream.Erase(it)
			continue
		}
		it = it.Next()
	}
}

// findTypeID looks up the identifier whose type definition is the given
// canonical type. Returns 0 if none exists.
func findTypeID(defs *definitionTable, t shadertype.Type) uint32 {
	var found uint32
	for id := uint32(0); int(id) < defs.len(); id++ {
		if td, ok := defs.at(id).state.(typeDef); ok && td.typ == t {
			found = id
		}
	}
	return found
}

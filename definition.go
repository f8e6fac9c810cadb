package spvlink

import (
	"github.com/gogpu/spvlink/shadertype"
	"github.com/gogpu/spvlink/spirv"
)

// defState is what an identifier is defined as. Exactly one variant
// applies per definition; identifiers that only ever appear in debug or
// decoration instructions stay untyped (nil state).
type defState interface {
	defState()
}

// typeDef marks an identifier defined by an OpType* instruction. A nil
// type represents void.
type typeDef struct {
	typ shadertype.Type
}

func (typeDef) defState() {}

// typePointerDef marks an identifier defined by OpTypePointer.
type typePointerDef struct {
	class   spirv.StorageClass
	pointee shadertype.Type
}

func (typePointerDef) defState() {}

// variableDef marks an identifier defined by OpVariable. typ is the
// pointee type of the variable's pointer type.
type variableDef struct {
	typ   shadertype.Type
	class spirv.StorageClass
}

func (variableDef) defState() {}

// constantDef marks an identifier defined by OpConstant. Only the first
// payload word is retained; it is all the rewrite passes need (access
// chain indices).
type constantDef struct {
	typ   shadertype.Type
	value uint32
}

func (constantDef) defState() {}

// definition holds the incrementally populated metadata for one
// identifier. Name, member names, built-in role and location arrive
// through separate debug/annotation instructions, usually before the
// defining instruction itself.
type definition struct {
	name        string
	memberNames []string
	builtIn     spirv.BuiltIn
	location    int
	state       defState
}

func (d *definition) setMemberName(i uint32, name string) {
	for uint32(len(d.memberNames)) <= i {
		d.memberNames = append(d.memberNames, "")
	}
	d.memberNames[i] = name
}

func (d *definition) memberName(i int) string {
	if i < len(d.memberNames) {
		return d.memberNames[i]
	}
	return ""
}

// typ returns the shader type attached to the definition, whatever its
// kind, or nil if it has none.
func (d *definition) typ() shadertype.Type {
	switch s := d.state.(type) {
	case typeDef:
		return s.typ
	case typePointerDef:
		return s.pointee
	case variableDef:
		return s.typ
	case constantDef:
		return s.typ
	default:
		return nil
	}
}

// constantValue returns the constant payload, or 0 for non-constants.
func (d *definition) constantValue() uint32 {
	if c, ok := d.state.(constantDef); ok {
		return c.value
	}
	return 0
}

// definitionTable indexes definitions by identifier. It is sized from
// the module's ID bound and grows when rewrite passes allocate new IDs.
// The table lives for one parse/transform cycle only.
type definitionTable struct {
	defs []definition
}

func newDefinitionTable(bound uint32) *definitionTable {
	t := &definitionTable{defs: make([]definition, bound)}
	for i := range t.defs {
		t.defs[i].builtIn = spirv.BuiltInNone
		t.defs[i].location = -1
	}
	return t
}

func (t *definitionTable) len() int {
	return len(t.defs)
}

// at returns the definition for id, growing the table if a rewrite pass
// allocated the identifier after parsing.
func (t *definitionTable) at(id uint32) *definition {
	for uint32(len(t.defs)) <= id {
		t.defs = append(t.defs, definition{builtIn: spirv.BuiltInNone, location: -1})
	}
	return &t.defs[id]
}

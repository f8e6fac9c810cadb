package spvlink

import (
	"testing"

	"github.com/gogpu/spvlink/shadertype"
	"github.com/gogpu/spvlink/spirv"
)

// wordsBuilder assembles SPIR-V word streams for tests. IDs are handed
// out through the stream's bound so fixtures never clash.
type wordsBuilder struct {
	s *spirv.InstructionStream
}

func newWordsBuilder() *wordsBuilder {
	// ID 0 is not a valid result ID; start the bound at 1.
	return &wordsBuilder{s: spirv.NewEmptyStream(1)}
}

func (b *wordsBuilder) id() uint32 {
	return b.s.AllocateID()
}

func (b *wordsBuilder) op(op spirv.Opcode, args ...uint32) {
	b.s.Append(op, args...)
}

func (b *wordsBuilder) name(id uint32, name string) {
	b.s.Append(spirv.OpName, append([]uint32{id}, spirv.EncodeString(name)...)...)
}

func (b *wordsBuilder) memberName(id, index uint32, name string) {
	b.s.Append(spirv.OpMemberName, append([]uint32{id, index}, spirv.EncodeString(name)...)...)
}

func (b *wordsBuilder) decorateLocation(id, location uint32) {
	b.s.Append(spirv.OpDecorate, id, uint32(spirv.DecorationLocation), location)
}

func (b *wordsBuilder) decorateBuiltIn(id uint32, builtIn spirv.BuiltIn) {
	b.s.Append(spirv.OpDecorate, id, uint32(spirv.DecorationBuiltIn), uint32(builtIn))
}

// preamble emits the capability and memory model every fixture needs.
func (b *wordsBuilder) preamble() {
	b.op(spirv.OpCapability, 1) // Shader
	b.op(spirv.OpMemoryModel,
		uint32(spirv.AddressingModelLogical), uint32(spirv.MemoryModelGLSL450))
}

func (b *wordsBuilder) words() []uint32 {
	return b.s.Words()
}

// ifaceVar declares one vec4 interface variable for
// buildInterfaceModule. loc -1 leaves the variable unlocated.
type ifaceVar struct {
	name  string
	class spirv.StorageClass
	loc   int
}

// buildInterfaceModule constructs a module whose interface consists of
// the given vec4 variables, declared in order.
func buildInterfaceModule(t *testing.T, stage Stage, reg *shadertype.Registry, vars []ifaceVar) *Module {
	t.Helper()

	b := newWordsBuilder()
	floatT := b.id()
	vec4T := b.id()
	ptrs := make([]uint32, len(vars))
	ids := make([]uint32, len(vars))
	for i := range vars {
		ptrs[i] = b.id()
		ids[i] = b.id()
	}

	b.preamble()
	for i, v := range vars {
		b.name(ids[i], v.name)
		if v.loc >= 0 {
			b.decorateLocation(ids[i], uint32(v.loc))
		}
	}
	b.op(spirv.OpTypeFloat, floatT, 32)
	b.op(spirv.OpTypeVector, vec4T, floatT, 4)
	for i, v := range vars {
		b.op(spirv.OpTypePointer, ptrs[i], uint32(v.class), vec4T)
		b.op(spirv.OpVariable, ptrs[i], ids[i], uint32(v.class))
	}

	m, err := NewModule(stage, b.words(), reg)
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	return m
}

// wantErrorKind fails the test unless err is an *Error of the given kind.
func wantErrorKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %s error, got nil", kind)
	}
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("Expected *Error, got %T: %v", err, err)
	}
	if e.Kind != kind {
		t.Errorf("Error kind: got %s, want %s (%v)", e.Kind, kind, err)
	}
}

// findVariable returns the variable with the given name, failing the
// test when it is absent.
func findVariable(t *testing.T, vars []Variable, name string) Variable {
	t.Helper()
	for _, v := range vars {
		if v.Name == name {
			return v
		}
	}
	t.Fatalf("Variable %q not found in %v", name, vars)
	return Variable{}
}

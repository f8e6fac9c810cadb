package spvlink

import (
	"testing"

	"github.com/gogpu/spvlink/shadertype"
	"github.com/gogpu/spvlink/spirv"
)

// globalBlockFixture builds a module in the shape glslang's HLSL front
// end produces: free-standing uniforms wrapped into a $Global uniform
// block, reached only through access chains.
type globalBlockFixture struct {
	words        []uint32
	globalStruct uint32
	globalVar    uint32
	c2           uint32
}

func buildGlobalBlockModule(t *testing.T) globalBlockFixture {
	t.Helper()

	b := newWordsBuilder()
	voidT := b.id()
	fnT := b.id()
	floatT := b.id()
	vec4T := b.id()
	uintT := b.id()
	c0 := b.id()
	c1 := b.id()
	c2 := b.id()
	globalStruct := b.id()
	ptrUniStruct := b.id()
	globalVar := b.id()
	ptrUniFloat := b.id()
	ptrUniVec4 := b.id()
	ptrOutVec4 := b.id()
	outVar := b.id()
	mainF := b.id()
	label := b.id()
	chainA := b.id()
	loadA := b.id()
	chainB := b.id()
	loadB := b.id()
	chainC := b.id()

	b.preamble()
	b.name(globalStruct, "$Global")
	b.memberName(globalStruct, 0, "u_Alpha")
	b.memberName(globalStruct, 1, "u_Tint")
	b.name(globalVar, "")
	b.name(outVar, "o_Color")
	b.op(spirv.OpDecorate, globalStruct, uint32(spirv.DecorationBlock))
	b.op(spirv.OpMemberDecorate, globalStruct, 0, uint32(spirv.DecorationOffset), 0)
	b.op(spirv.OpMemberDecorate, globalStruct, 1, uint32(spirv.DecorationOffset), 16)

	b.op(spirv.OpTypeVoid, voidT)
	b.op(spirv.OpTypeFunction, fnT, voidT)
	b.op(spirv.OpTypeFloat, floatT, 32)
	b.op(spirv.OpTypeVector, vec4T, floatT, 4)
	b.op(spirv.OpTypeInt, uintT, 32, 0)
	b.op(spirv.OpConstant, uintT, c0, 0)
	b.op(spirv.OpConstant, uintT, c1, 1)
	b.op(spirv.OpConstant, uintT, c2, 2)
	b.op(spirv.OpTypeStruct, globalStruct, floatT, vec4T)
	b.op(spirv.OpTypePointer, ptrUniStruct, uint32(spirv.StorageClassUniform), globalStruct)
	b.op(spirv.OpVariable, ptrUniStruct, globalVar, uint32(spirv.StorageClassUniform))
	b.op(spirv.OpTypePointer, ptrUniFloat, uint32(spirv.StorageClassUniform), floatT)
	b.op(spirv.OpTypePointer, ptrUniVec4, uint32(spirv.StorageClassUniform), vec4T)
	b.op(spirv.OpTypePointer, ptrOutVec4, uint32(spirv.StorageClassOutput), vec4T)
	b.op(spirv.OpVariable, ptrOutVec4, outVar, uint32(spirv.StorageClassOutput))

	b.op(spirv.OpFunction, voidT, mainF, 0, fnT)
	b.op(spirv.OpLabel, label)
	// Whole first member: single-index chain, deleted outright.
	b.op(spirv.OpAccessChain, ptrUniFloat, chainA, globalVar, c0)
	b.op(spirv.OpLoad, floatT, loadA, chainA)
	// One component of the second member: the chain survives, rebased
	// onto the member variable with the member index dropped.
	b.op(spirv.OpAccessChain, ptrUniFloat, chainB, globalVar, c1, c2)
	b.op(spirv.OpLoad, floatT, loadB, chainB)
	// Whole second member copied out through a deleted chain.
	b.op(spirv.OpInBoundsAccessChain, ptrUniVec4, chainC, globalVar, c1)
	b.op(spirv.OpCopyMemory, outVar, chainC)
	b.op(spirv.OpReturn)
	b.op(spirv.OpFunctionEnd)

	return globalBlockFixture{
		words:        b.words(),
		globalStruct: globalStruct,
		globalVar:    globalVar,
		c2:           c2,
	}
}

func TestUnwrap_ExposesBlockMembersAsParameters(t *testing.T) {
	reg := shadertype.NewRegistry()
	fix := buildGlobalBlockModule(t)

	m, err := NewModule(StageFragment, fix.words, reg)
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}

	if len(m.Parameters()) != 2 {
		t.Fatalf("Parameters: got %v, want u_Alpha and u_Tint", m.Parameters())
	}
	alpha := findVariable(t, m.Parameters(), "u_Alpha")
	if alpha.Type != shadertype.FloatType {
		t.Errorf("u_Alpha type: got %v, want float", alpha.Type)
	}
	tint := findVariable(t, m.Parameters(), "u_Tint")
	if want := reg.Intern(&shadertype.Vector{Scalar: shadertype.FloatType, Size: 4}); tint.Type != want {
		t.Errorf("u_Tint type: got %v, want vec4", tint.Type)
	}
	if !alpha.HasLocation() || !tint.HasLocation() {
		t.Errorf("Unwrapped members did not receive locations: %v", m.Parameters())
	}
}

func TestUnwrap_RewritesStream(t *testing.T) {
	reg := shadertype.NewRegistry()
	fix := buildGlobalBlockModule(t)

	m, err := NewModule(StageFragment, fix.words, reg)
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	stream := spirv.NewInstructionStream(m.Words())

	// Collect the synthesized UniformConstant variables in stream order:
	// one per member, u_Alpha first.
	var memberVars []uint32
	for it := stream.Begin(); !it.End(); it = it.Next() {
		if it.Opcode() == spirv.OpVariable &&
			spirv.StorageClass(it.Operand(2)) == spirv.StorageClassUniformConstant {
			memberVars = append(memberVars, it.Operand(1))
		}
	}
	if len(memberVars) != 2 {
		t.Fatalf("UniformConstant variables in stream: got %d, want 2", len(memberVars))
	}
	alphaVar, tintVar := memberVars[0], memberVars[1]

	var (
		sawRedirectedLoad bool
		sawRebasedChain   bool
		sawRedirectedCopy bool
	)
	for it := stream.Begin(); !it.End(); it = it.Next() {
		switch it.Opcode() {
		case spirv.OpTypeStruct:
			t.Error("Block struct type still present after unwrap")

		case spirv.OpTypePointer:
			if it.Operand(2) == fix.globalStruct {
				t.Error("Pointer to block struct still present after unwrap")
			}

		case spirv.OpVariable:
			if it.Operand(1) == fix.globalVar {
				t.Error("Block variable still present after unwrap")
			}

		case spirv.OpAccessChain, spirv.OpInBoundsAccessChain:
			if it.Operand(2) == fix.globalVar {
				t.Error("Access chain still based on the deleted block variable")
			}
			if it.Operand(2) == tintVar {
				sawRebasedChain = true
				if it.NumOperands() != 4 {
					t.Errorf("Rebased chain operand count: got %d, want 4", it.NumOperands())
				}
				if it.Operand(3) != fix.c2 {
					t.Errorf("Rebased chain kept index %d, want component constant %d",
						it.Operand(3), fix.c2)
				}
			}

		case spirv.OpLoad:
			if it.Operand(2) == alphaVar {
				sawRedirectedLoad = true
			}

		case spirv.OpCopyMemory:
			if it.Operand(1) == tintVar {
				sawRedirectedCopy = true
			}
		}
	}

	if !sawRedirectedLoad {
		t.Error("Load of the first member was not redirected to its variable")
	}
	if !sawRebasedChain {
		t.Error("Multi-index chain was not rebased onto the member variable")
	}
	if !sawRedirectedCopy {
		t.Error("Copy through a deleted chain was not redirected to the member variable")
	}

	// The rewritten stream must still frame correctly and reparse.
	if err := stream.Validate(); err != nil {
		t.Errorf("Rewritten stream fails validation: %v", err)
	}
	if _, err := NewModule(StageFragment, m.Words(), reg); err != nil {
		t.Errorf("Rewritten module fails to reparse: %v", err)
	}
}

func TestUnwrap_GrowsBound(t *testing.T) {
	reg := shadertype.NewRegistry()
	fix := buildGlobalBlockModule(t)

	before := spirv.NewInstructionStream(fix.words).Bound()
	m, err := NewModule(StageFragment, fix.words, reg)
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	after := spirv.NewInstructionStream(m.Words()).Bound()

	// Two members, each synthesizing a pointer type and a variable.
	if after != before+4 {
		t.Errorf("Bound after unwrap: got %d, want %d", after, before+4)
	}
}

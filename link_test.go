package spvlink

import (
	"bytes"
	"testing"

	"github.com/gogpu/spvlink/shadertype"
	"github.com/gogpu/spvlink/spirv"
)

func TestLinkInputs_RemapsToPreviousStage(t *testing.T) {
	reg := shadertype.NewRegistry()
	vert := buildInterfaceModule(t, StageVertex, reg, []ifaceVar{
		{"v_Color", spirv.StorageClassOutput, -1},
		{"v_Normal", spirv.StorageClassOutput, -1},
	})
	// The fragment shader declares the same varyings in the opposite
	// order, so its auto-assigned locations disagree with the vertex
	// shader's.
	frag := buildInterfaceModule(t, StageFragment, reg, []ifaceVar{
		{"v_Normal", spirv.StorageClassInput, -1},
		{"v_Color", spirv.StorageClassInput, -1},
	})

	if err := frag.LinkInputs(vert); err != nil {
		t.Fatalf("LinkInputs failed: %v", err)
	}

	for _, name := range []string{"v_Color", "v_Normal"} {
		in := findVariable(t, frag.Inputs(), name)
		out := findVariable(t, vert.Outputs(), name)
		if in.Location != out.Location {
			t.Errorf("%s: input location %d does not match output location %d",
				name, in.Location, out.Location)
		}
	}

	// The remap must be written through to the binary.
	reloaded, err := LoadBytes(StageFragment, frag.Bytes(), reg)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	got := map[int]bool{}
	for _, in := range reloaded.Inputs() {
		got[in.Location] = true
	}
	if !got[0] || !got[1] || len(got) != 2 {
		t.Errorf("Reloaded input locations: got %v, want {0, 1}", got)
	}
}

func TestLinkInputs_NoEditWhenAlreadyMatched(t *testing.T) {
	reg := shadertype.NewRegistry()
	vert := buildInterfaceModule(t, StageVertex, reg, []ifaceVar{
		{"v_Color", spirv.StorageClassOutput, -1},
	})
	frag := buildInterfaceModule(t, StageFragment, reg, []ifaceVar{
		{"v_Color", spirv.StorageClassInput, -1},
	})

	before := frag.Bytes()
	if err := frag.LinkInputs(vert); err != nil {
		t.Fatalf("LinkInputs failed: %v", err)
	}
	if !bytes.Equal(before, frag.Bytes()) {
		t.Error("LinkInputs rewrote the stream although all locations matched")
	}
}

func TestLinkInputs_UnlinkedInputFailsWithoutEdits(t *testing.T) {
	reg := shadertype.NewRegistry()
	vert := buildInterfaceModule(t, StageVertex, reg, []ifaceVar{
		{"v_Color", spirv.StorageClassOutput, -1},
	})
	frag := buildInterfaceModule(t, StageFragment, reg, []ifaceVar{
		{"v_Color", spirv.StorageClassInput, -1},
		{"v_Missing", spirv.StorageClassInput, -1},
	})

	before := frag.Bytes()
	err := frag.LinkInputs(vert)
	wantErrorKind(t, err, ErrUnlinkedInput)

	if !bytes.Equal(before, frag.Bytes()) {
		t.Error("Failed link modified the module")
	}
	if got := findVariable(t, frag.Inputs(), "v_Color").Location; got != 0 {
		t.Errorf("v_Color location after failed link: got %d, want 0", got)
	}
}

func TestLinkInputs_RejectsStageOrder(t *testing.T) {
	reg := shadertype.NewRegistry()
	vert := buildInterfaceModule(t, StageVertex, reg, []ifaceVar{
		{"v_Color", spirv.StorageClassOutput, -1},
	})
	frag := buildInterfaceModule(t, StageFragment, reg, []ifaceVar{
		{"v_Color", spirv.StorageClassInput, -1},
	})

	wantErrorKind(t, vert.LinkInputs(frag), ErrStageOrder)

	frag2 := buildInterfaceModule(t, StageFragment, reg, []ifaceVar{
		{"v_Color", spirv.StorageClassInput, -1},
	})
	wantErrorKind(t, frag.LinkInputs(frag2), ErrStageOrder)
}

func TestRemapParameterLocations(t *testing.T) {
	reg := shadertype.NewRegistry()
	m := buildInterfaceModule(t, StageFragment, reg, []ifaceVar{
		{"u_Tint", spirv.StorageClassUniformConstant, -1},
		{"u_Fog", spirv.StorageClassUniformConstant, -1},
	})
	if findVariable(t, m.Parameters(), "u_Tint").Location != 0 {
		t.Fatalf("Unexpected initial locations: %v", m.Parameters())
	}

	m.RemapParameterLocations(map[int]int{0: 5})

	if got := findVariable(t, m.Parameters(), "u_Tint").Location; got != 5 {
		t.Errorf("u_Tint location after remap: got %d, want 5", got)
	}
	if got := findVariable(t, m.Parameters(), "u_Fog").Location; got != 1 {
		t.Errorf("u_Fog location after remap: got %d, want 1 (untouched)", got)
	}

	reloaded, err := LoadBytes(StageFragment, m.Bytes(), reg)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	got := map[int]bool{}
	for _, p := range reloaded.Parameters() {
		got[p.Location] = true
	}
	if !got[5] || !got[1] {
		t.Errorf("Reloaded parameter locations: got %v, want {1, 5}", got)
	}
}

package spvlink

import (
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/gogpu/spvlink/shadertype"
	"github.com/gogpu/spvlink/spirv"
)

func TestReflectionData_RoundTrip(t *testing.T) {
	reg := shadertype.NewRegistry()
	m := buildInterfaceModule(t, StageFragment, reg, []ifaceVar{
		{"v_Color", spirv.StorageClassInput, -1},
		{"o_Color", spirv.StorageClassOutput, -1},
		{"u_Tint", spirv.StorageClassUniformConstant, -1},
	})

	data, err := m.ReflectionData()
	if err != nil {
		t.Fatalf("ReflectionData failed: %v", err)
	}

	info, err := DecodeReflectionData(data)
	if err != nil {
		t.Fatalf("DecodeReflectionData failed: %v", err)
	}
	if info.Stage != "fragment" {
		t.Errorf("Stage: got %q, want %q", info.Stage, "fragment")
	}
	if len(info.Inputs) != 1 || info.Inputs[0].Name != "v_Color" {
		t.Errorf("Inputs: got %v, want v_Color", info.Inputs)
	}
	if info.Inputs[0].Type != "vec4" {
		t.Errorf("Input type: got %q, want %q", info.Inputs[0].Type, "vec4")
	}
	if len(info.Outputs) != 1 || info.Outputs[0].Location != 0 {
		t.Errorf("Outputs: got %v, want o_Color at location 0", info.Outputs)
	}
	if len(info.Parameters) != 1 || info.Parameters[0].Name != "u_Tint" {
		t.Errorf("Parameters: got %v, want u_Tint", info.Parameters)
	}
}

func TestDecodeReflectionData_RejectsSchemaMismatch(t *testing.T) {
	data, err := msgpack.Marshal(&ModuleInfo{Schema: reflectionSchemaVersion + 1})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if _, err := DecodeReflectionData(data); err == nil {
		t.Error("Expected error for mismatched schema version")
	}
}

func TestDecodeReflectionData_RejectsGarbage(t *testing.T) {
	if _, err := DecodeReflectionData([]byte{0xC1, 0x00}); err == nil {
		t.Error("Expected error for malformed payload")
	}
}

func TestPipelineReflection_RoundTrip(t *testing.T) {
	reg := shadertype.NewRegistry()
	vert := buildInterfaceModule(t, StageVertex, reg, []ifaceVar{
		{"position", spirv.StorageClassInput, -1},
		{"v_Color", spirv.StorageClassOutput, -1},
	})
	frag := buildInterfaceModule(t, StageFragment, reg, []ifaceVar{
		{"v_Color", spirv.StorageClassInput, -1},
		{"o_Color", spirv.StorageClassOutput, -1},
	})

	data, err := EncodePipelineReflection([]*ModuleInfo{vert.Info(), frag.Info()})
	if err != nil {
		t.Fatalf("EncodePipelineReflection failed: %v", err)
	}
	infos, err := DecodePipelineReflection(data)
	if err != nil {
		t.Fatalf("DecodePipelineReflection failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Decoded stages: got %d, want 2", len(infos))
	}
	if infos[0].Stage != "vertex" || infos[1].Stage != "fragment" {
		t.Errorf("Stage order: got %q, %q", infos[0].Stage, infos[1].Stage)
	}
	if len(infos[0].Inputs) != 1 || infos[0].Inputs[0].Name != "position" {
		t.Errorf("Vertex inputs: got %v, want position", infos[0].Inputs)
	}
}

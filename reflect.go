package spvlink

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// reflectionSchemaVersion is bumped whenever the payload layout
// changes, so stale cached blobs are rejected instead of misread.
const reflectionSchemaVersion uint16 = 1

// VariableInfo is the serializable form of one interface variable.
type VariableInfo struct {
	Name     string
	Type     string
	Location int
}

// ModuleInfo is a serializable snapshot of a module's interface,
// suitable for toolchain caches that want reflection data without
// reparsing the binary.
type ModuleInfo struct {
	Schema     uint16
	Stage      string
	Inputs     []VariableInfo
	Outputs    []VariableInfo
	Parameters []VariableInfo
}

// Info returns the reflection snapshot of the module.
func (m *Module) Info() *ModuleInfo {
	return &ModuleInfo{
		Schema:     reflectionSchemaVersion,
		Stage:      m.stage.String(),
		Inputs:     variableInfos(m.inputs),
		Outputs:    variableInfos(m.outputs),
		Parameters: variableInfos(m.parameters),
	}
}

// ReflectionData encodes the module's interface as a msgpack blob.
func (m *Module) ReflectionData() ([]byte, error) {
	return msgpack.Marshal(m.Info())
}

// DecodeReflectionData decodes a blob produced by ReflectionData,
// rejecting payloads written under a different schema version.
func DecodeReflectionData(data []byte) (*ModuleInfo, error) {
	var info ModuleInfo
	if err := msgpack.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("spvlink: decoding reflection data: %w", err)
	}
	if info.Schema != reflectionSchemaVersion {
		return nil, fmt.Errorf("spvlink: reflection schema %d, want %d", info.Schema, reflectionSchemaVersion)
	}
	return &info, nil
}

// EncodePipelineReflection encodes the reflection snapshots of a whole
// pipeline, in stage order, as a single msgpack blob.
func EncodePipelineReflection(infos []*ModuleInfo) ([]byte, error) {
	return msgpack.Marshal(infos)
}

// DecodePipelineReflection decodes a blob produced by
// EncodePipelineReflection.
func DecodePipelineReflection(data []byte) ([]*ModuleInfo, error) {
	var infos []*ModuleInfo
	if err := msgpack.Unmarshal(data, &infos); err != nil {
		return nil, fmt.Errorf("spvlink: decoding pipeline reflection: %w", err)
	}
	for _, info := range infos {
		if info.Schema != reflectionSchemaVersion {
			return nil, fmt.Errorf("spvlink: reflection schema %d, want %d", info.Schema, reflectionSchemaVersion)
		}
	}
	return infos, nil
}

func variableInfos(vars []Variable) []VariableInfo {
	infos := make([]VariableInfo, len(vars))
	for i, v := range vars {
		infos[i] = VariableInfo{
			Name:     v.Name,
			Type:     typeName(v.Type),
			Location: v.Location,
		}
	}
	return infos
}

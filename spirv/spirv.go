package spirv

// MagicNumber identifies a SPIR-V binary (word 0 of the header).
const MagicNumber = 0x07230203

// GeneratorID is the generator word written into new headers.
// Zero means unregistered generator.
const GeneratorID = 0x00000000

// Header word indices and size.
const (
	HeaderMagicIndex     = 0
	HeaderVersionIndex   = 1
	HeaderGeneratorIndex = 2
	HeaderBoundIndex     = 3
	HeaderSchemaIndex    = 4
	HeaderWords          = 5
)

// Packing of the first word of every instruction.
const (
	WordCountShift = 16
	OpcodeMask     = 0xFFFF
)

// Opcode represents a SPIR-V opcode.
type Opcode uint16

// Opcodes recognized by this package. The set covers module layout,
// debug info, annotations, types, constants, variables and the memory
// access instructions the rewrite passes touch.
const (
	OpNop                 Opcode = 0
	OpSourceContinued     Opcode = 2
	OpSource              Opcode = 3
	OpSourceExtension     Opcode = 4
	OpName                Opcode = 5
	OpMemberName          Opcode = 6
	OpString              Opcode = 7
	OpLine                Opcode = 8
	OpExtension           Opcode = 10
	OpExtInstImport       Opcode = 11
	OpMemoryModel         Opcode = 14
	OpEntryPoint          Opcode = 15
	OpExecutionMode       Opcode = 16
	OpCapability          Opcode = 17
	OpTypeVoid            Opcode = 19
	OpTypeBool            Opcode = 20
	OpTypeInt             Opcode = 21
	OpTypeFloat           Opcode = 22
	OpTypeVector          Opcode = 23
	OpTypeMatrix          Opcode = 24
	OpTypeImage           Opcode = 25
	OpTypeSampler         Opcode = 26
	OpTypeSampledImage    Opcode = 27
	OpTypeArray           Opcode = 28
	OpTypeRuntimeArray    Opcode = 29
	OpTypeStruct          Opcode = 30
	OpTypePointer         Opcode = 32
	OpTypeFunction        Opcode = 33
	OpConstantTrue        Opcode = 41
	OpConstantFalse       Opcode = 42
	OpConstant            Opcode = 43
	OpConstantComposite   Opcode = 44
	OpFunction            Opcode = 54
	OpFunctionEnd         Opcode = 56
	OpVariable            Opcode = 59
	OpLoad                Opcode = 61
	OpStore               Opcode = 62
	OpCopyMemory          Opcode = 63
	OpAccessChain         Opcode = 65
	OpInBoundsAccessChain Opcode = 66
	OpDecorate            Opcode = 71
	OpMemberDecorate      Opcode = 72
	OpDecorationGroup     Opcode = 73
	OpGroupDecorate       Opcode = 74
	OpGroupMemberDecorate Opcode = 75
	OpLabel               Opcode = 248
	OpReturn              Opcode = 253
	OpNoLine              Opcode = 317
	OpModuleProcessed     Opcode = 330
)

// AddressingModel represents the OpMemoryModel addressing operand.
type AddressingModel uint32

const (
	AddressingModelLogical    AddressingModel = 0
	AddressingModelPhysical32 AddressingModel = 1
	AddressingModelPhysical64 AddressingModel = 2
)

// MemoryModel represents the OpMemoryModel memory operand.
type MemoryModel uint32

const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
	MemoryModelOpenCL  MemoryModel = 2
	MemoryModelVulkan  MemoryModel = 3
)

// StorageClass classifies where a variable lives and which
// interface-matching rules apply to it.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassGeneric         StorageClass = 8
	StorageClassPushConstant    StorageClass = 9
	StorageClassAtomicCounter   StorageClass = 10
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

// Decoration represents an OpDecorate kind.
type Decoration uint32

const (
	DecorationBlock         Decoration = 2
	DecorationRowMajor      Decoration = 4
	DecorationColMajor      Decoration = 5
	DecorationArrayStride   Decoration = 6
	DecorationMatrixStride  Decoration = 7
	DecorationBuiltIn       Decoration = 11
	DecorationLocation      Decoration = 30
	DecorationBinding       Decoration = 33
	DecorationDescriptorSet Decoration = 34
	DecorationOffset        Decoration = 35
)

// BuiltIn identifies a fixed pipeline role attached via
// OpDecorate BuiltIn. Only the values the passes check are named;
// everything else is carried opaquely.
type BuiltIn uint32

const (
	BuiltInPosition   BuiltIn = 0
	BuiltInPointSize  BuiltIn = 1
	BuiltInVertexID   BuiltIn = 5
	BuiltInInstanceID BuiltIn = 6
	BuiltInFragCoord  BuiltIn = 15
	BuiltInFragDepth  BuiltIn = 22

	// BuiltInNone marks a variable that carries no built-in role.
	BuiltInNone BuiltIn = 0xFFFFFFFF
)

// Dim represents the dimensionality operand of OpTypeImage.
type Dim uint32

const (
	Dim1D          Dim = 0
	Dim2D          Dim = 1
	Dim3D          Dim = 2
	DimCube        Dim = 3
	DimRect        Dim = 4
	DimBuffer      Dim = 5
	DimSubpassData Dim = 6
)

// AccessQualifier represents the optional access operand of OpTypeImage.
type AccessQualifier uint32

const (
	AccessQualifierReadOnly  AccessQualifier = 0
	AccessQualifierWriteOnly AccessQualifier = 1
	AccessQualifierReadWrite AccessQualifier = 2
)

// debugOpcodes lists the debug/diagnostic instructions removed by
// InstructionStream.Strip.
var debugOpcodes = map[Opcode]bool{
	OpNop:             true,
	OpSourceContinued: true,
	OpSource:          true,
	OpSourceExtension: true,
	OpName:            true,
	OpMemberName:      true,
	OpString:          true,
	OpLine:            true,
	OpNoLine:          true,
	OpModuleProcessed: true,
}

// IsDebugOpcode reports whether op carries only debug/diagnostic
// information and is safe to strip from a module.
func IsDebugOpcode(op Opcode) bool {
	return debugOpcodes[op]
}

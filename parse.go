package spvlink

import (
	"github.com/gogpu/spvlink/shadertype"
	"github.com/gogpu/spvlink/spirv"
)

// parseModule runs one forward pass over the stream, validating the
// header and populating a definition table of the module's ID bound.
// Any fatal condition aborts parsing; the caller must discard the
// module.
func parseModule(stream *spirv.InstructionStream, reg *shadertype.Registry, stage Stage) (*definitionTable, error) {
	if err := stream.Validate(); err != nil {
		return nil, errorf(ErrInvalidHeader, stage, 0, "%v", err)
	}

	defs := newDefinitionTable(stream.Bound())
	for it := stream.Begin(); !it.End(); it = it.Next() {
		if err := parseInstruction(defs, it.Instruction(), reg, stage); err != nil {
			return nil, err
		}
	}
	return defs, nil
}

// parseInstruction dispatches on one instruction's opcode. Instructions
// outside the closed set below carry nothing the linker needs and are
// skipped.
func parseInstruction(defs *definitionTable, inst spirv.Instruction, reg *shadertype.Registry, stage Stage) error {
	args := inst.Operands

	switch inst.Opcode {
	case spirv.OpMemoryModel:
		if spirv.AddressingModel(args[0]) != spirv.AddressingModelLogical {
			return errorf(ErrUnsupportedModel, stage, 0, "addressing model Logical must be used")
		}
		if spirv.MemoryModel(args[1]) != spirv.MemoryModelGLSL450 {
			return errorf(ErrUnsupportedModel, stage, 0, "memory model GLSL450 must be used")
		}

	case spirv.OpName:
		defs.at(args[0]).name = spirv.DecodeString(args[1:])

	case spirv.OpMemberName:
		defs.at(args[0]).setMemberName(args[1], spirv.DecodeString(args[2:]))

	case spirv.OpTypeVoid:
		defs.at(args[0]).state = typeDef{typ: nil}

	case spirv.OpTypeBool:
		defs.at(args[0]).state = typeDef{typ: shadertype.BoolType}

	case spirv.OpTypeInt:
		// args[1] is the bit width, args[2] the signedness.
		if args[2] != 0 {
			defs.at(args[0]).state = typeDef{typ: shadertype.IntType}
		} else {
			defs.at(args[0]).state = typeDef{typ: shadertype.UIntType}
		}

	case spirv.OpTypeFloat:
		defs.at(args[0]).state = typeDef{typ: shadertype.FloatType}

	case spirv.OpTypeVector:
		element, ok := defs.at(args[1]).typ().(*shadertype.Scalar)
		if !ok {
			return errorf(ErrBadTypeReference, stage, args[0],
				"vector component type %%%d is not a scalar", args[1])
		}
		defs.at(args[0]).state = typeDef{typ: reg.Intern(&shadertype.Vector{
			Scalar: element,
			Size:   args[2],
		})}

	case spirv.OpTypeMatrix:
		column, ok := defs.at(args[1]).typ().(*shadertype.Vector)
		if !ok {
			return errorf(ErrBadTypeReference, stage, args[0],
				"matrix column type %%%d is not a vector", args[1])
		}
		defs.at(args[0]).state = typeDef{typ: reg.Intern(&shadertype.Matrix{
			Scalar: column.Scalar,
			Cols:   args[2],
			Rows:   column.Size,
		})}

	case spirv.OpTypePointer:
		defs.at(args[0]).state = typePointerDef{
			class:   spirv.StorageClass(args[1]),
			pointee: defs.at(args[2]).typ(),
		}

	case spirv.OpTypeImage:
		shape, err := imageShape(spirv.Dim(args[2]), args[4] != 0, stage, args[0])
		if err != nil {
			return err
		}
		access := shadertype.AccessUnknown
		if len(args) > 8 {
			switch spirv.AccessQualifier(args[8]) {
			case spirv.AccessQualifierReadOnly:
				access = shadertype.AccessReadOnly
			case spirv.AccessQualifierWriteOnly:
				access = shadertype.AccessWriteOnly
			case spirv.AccessQualifierReadWrite:
				access = shadertype.AccessReadWrite
			default:
				Logger().Warn("invalid access qualifier in OpTypeImage", "id", args[0], "qualifier", args[8])
			}
		}
		defs.at(args[0]).state = typeDef{typ: reg.Intern(&shadertype.Image{
			Shape:  shape,
			Access: access,
		})}

	case spirv.OpTypeSampler:
		// A sampler that's not bound to a particular image.
		defs.at(args[0]).state = typeDef{typ: shadertype.SamplerType}

	case spirv.OpTypeSampledImage:
		image, ok := defs.at(args[1]).typ().(*shadertype.Image)
		if !ok {
			return errorf(ErrBadTypeReference, stage, args[0],
				"OpTypeSampledImage must refer to an image type")
		}
		defs.at(args[0]).state = typeDef{typ: reg.Intern(&shadertype.SampledImage{
			Shape: image.Shape,
		})}

	case spirv.OpTypeArray:
		if element := defs.at(args[1]).typ(); element != nil {
			defs.at(args[0]).state = typeDef{typ: reg.Intern(&shadertype.Array{
				Element: element,
				Size:    defs.at(args[2]).constantValue(),
			})}
		}

	case spirv.OpTypeStruct:
		members := make([]shadertype.Member, len(args)-1)
		for i := range members {
			members[i] = shadertype.Member{
				Name: defs.at(args[0]).memberName(i),
				Type: defs.at(args[i+1]).typ(),
			}
		}
		defs.at(args[0]).state = typeDef{typ: reg.Intern(&shadertype.Struct{Members: members})}

	case spirv.OpConstant:
		value := uint32(0)
		if len(args) > 2 {
			value = args[2]
		}
		defs.at(args[1]).state = constantDef{
			typ:   defs.at(args[0]).typ(),
			value: value,
		}

	case spirv.OpVariable:
		ptr, ok := defs.at(args[0]).state.(typePointerDef)
		if !ok {
			return errorf(ErrBadVariable, stage, args[1], "variable should use pointer type")
		}
		class := spirv.StorageClass(args[2])
		defs.at(args[1]).state = variableDef{typ: ptr.pointee, class: class}
		if class == spirv.StorageClassUniformConstant {
			d := defs.at(args[1])
			Logger().Debug("defined uniform",
				"name", d.name, "location", d.location, "type", typeName(ptr.pointee))
		}

	case spirv.OpDecorate:
		switch spirv.Decoration(args[1]) {
		case spirv.DecorationBuiltIn:
			defs.at(args[0]).builtIn = spirv.BuiltIn(args[2])
		case spirv.DecorationLocation:
			defs.at(args[0]).location = int(args[2])
		}
		// Other decoration kinds carry metadata this linker does not
		// need; skipping them keeps newer generators parseable.
	}

	return nil
}

// imageShape maps an OpTypeImage dimensionality plus arrayed flag onto
// a texture shape.
func imageShape(dim spirv.Dim, arrayed bool, stage Stage, id uint32) (shadertype.TextureShape, error) {
	switch dim {
	case spirv.Dim1D:
		if arrayed {
			return shadertype.Shape1DArray, nil
		}
		return shadertype.Shape1D, nil
	case spirv.Dim2D:
		if arrayed {
			return shadertype.Shape2DArray, nil
		}
		return shadertype.Shape2D, nil
	case spirv.Dim3D:
		return shadertype.Shape3D, nil
	case spirv.DimCube:
		if arrayed {
			return shadertype.ShapeCubeArray, nil
		}
		return shadertype.ShapeCube, nil
	case spirv.DimBuffer:
		return shadertype.ShapeBuffer, nil
	case spirv.DimRect:
		return 0, errorf(ErrUnsupportedImage, stage, id, "imageRect shader inputs are not supported")
	case spirv.DimSubpassData:
		return 0, errorf(ErrUnsupportedImage, stage, id, "subpassInput shader inputs are not supported")
	default:
		return 0, errorf(ErrUnsupportedImage, stage, id, "unknown image dimensionality %d", dim)
	}
}

// typeName formats a possibly-nil type for log output.
func typeName(t shadertype.Type) string {
	if t == nil {
		return "void"
	}
	return t.String()
}

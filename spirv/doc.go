// Package spirv provides a word-level model of SPIR-V binary modules.
//
// SPIR-V is the standard intermediate language for GPU shaders,
// used by Vulkan, OpenCL, and other APIs.
//
// # Binary layout
//
// A SPIR-V module is a stream of 32-bit words:
//   - Header: 5 words (magic, version, generator, ID bound, schema)
//   - Instructions: each starts with (wordCount << 16 | opcode),
//     followed by wordCount-1 operand words
//
// # Instruction Stream
//
// InstructionStream owns one flat word buffer and supports structured
// iteration as well as in-place surgery:
//
//	stream, err := spirv.StreamFromBytes(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for it := stream.Begin(); !it.End(); it = it.Next() {
//		inst := it.Instruction()
//		// ...
//	}
//
// Cursors are word offsets into the buffer, not pointers, so a saved
// cursor survives buffer growth. Insert and Erase return the cursor to
// resume from; cursors positioned before the edit point stay valid.
//
// # References
//
// SPIR-V Specification: https://registry.khronos.org/SPIR-V/specs/unified1/SPIRV.html
package spirv

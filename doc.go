// Package spvlink links and normalizes compiled SPIR-V shader modules
// so they satisfy Vulkan-style interface-matching rules.
//
// A Module is constructed from the raw word stream a shading-language
// compiler produced. Construction runs a fixed pipeline:
//
//  1. Parse all definitions out of the stream (requires debug info).
//  2. Unwrap a legacy $Global uniform block, if the front end emitted
//     one, back into discrete uniform variables.
//  3. Assign location decorations to every interface variable that is
//     missing one.
//  4. Build the exported input/output/parameter lists.
//  5. Strip debugging information from the module.
//
// Example:
//
//	module, err := spvlink.LoadBytes(spvlink.StageFragment, data, shadertype.Default())
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, in := range module.Inputs() {
//		fmt.Println(in.Name, in.Type, in.Location)
//	}
//
// Once all stages of a pipeline exist, consecutive stages are linked so
// each stage's inputs take the locations of the matching outputs of the
// stage before it:
//
//	if err := fragModule.LinkInputs(vertModule); err != nil {
//		log.Fatal(err)
//	}
//
// By default the package produces no log output; pass a *slog.Logger to
// SetLogger to see per-variable assignment diagnostics at debug level.
package spvlink

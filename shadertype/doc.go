// Package shadertype models the shader-facing types referenced by a
// SPIR-V module: scalars, vectors, matrices, arrays, structs, and the
// opaque sampler/image types.
//
// Types are immutable and canonical: the Registry interns them by
// structural equality, so two lookups of the same structure return the
// same pointer. Consumers may therefore compare types with ==. The
// package-level Default registry lives for the whole process; parsers
// receive a registry handle explicitly rather than reaching for it.
package shadertype

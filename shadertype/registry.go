package shadertype

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Registry interns types by structural equality so that each unique
// structure has exactly one canonical Type value. Interned types are
// shared and never mutated or freed; pointer equality of the returned
// values is equivalent to structural equality.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	types map[string]Type
}

// NewRegistry creates an empty registry. The scalar and bare-sampler
// singletons are pre-interned.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]Type, 16)}
	for _, t := range []Type{BoolType, IntType, UIntType, FloatType, SamplerType} {
		r.types[typeKey(t)] = t
	}
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry. Its lifetime is the
// process lifetime; types interned here may be held indefinitely.
func Default() *Registry {
	return defaultRegistry
}

// Intern returns the canonical value for t, registering it if its
// structure has not been seen before. Composite types must be built
// from already canonical sub-types.
func (r *Registry) Intern(t Type) Type {
	if t == nil {
		return nil
	}
	key := typeKey(t)

	r.mu.Lock()
	defer r.mu.Unlock()
	if canon, ok := r.types[key]; ok {
		return canon
	}
	r.types[key] = t
	return t
}

// Count returns the number of unique types registered.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.types)
}

// typeKey builds a unique structural key for a type. Two structurally
// identical types produce the same key.
func typeKey(t Type) string {
	switch t := t.(type) {
	case nil:
		return "void"
	case *Scalar:
		return "scalar:" + strconv.Itoa(int(t.Kind))
	case *Vector:
		return "vec:" + strconv.FormatUint(uint64(t.Size), 10) + ":" + typeKey(t.Scalar)
	case *Matrix:
		return "mat:" + strconv.FormatUint(uint64(t.Cols), 10) + "x" +
			strconv.FormatUint(uint64(t.Rows), 10) + ":" + typeKey(t.Scalar)
	case *Array:
		return "array:" + strconv.FormatUint(uint64(t.Size), 10) + ":" + typeKey(t.Element)
	case *Struct:
		var sb strings.Builder
		fmt.Fprintf(&sb, "struct:%d", len(t.Members))
		for _, m := range t.Members {
			fmt.Fprintf(&sb, ":m(%s,%s)", m.Name, typeKey(m.Type))
		}
		return sb.String()
	case *Image:
		return fmt.Sprintf("image:%d:%d", t.Shape, t.Access)
	case *SampledImage:
		return fmt.Sprintf("sampledimage:%d", t.Shape)
	case *Sampler:
		return "sampler"
	default:
		return fmt.Sprintf("unknown:%T", t)
	}
}

package model

// CacheReason tags why a recursive lookup produced, or did not produce, a
// module table.
type CacheReason int

// Cache reasons.
const (
	ReasonNotFound CacheReason = iota + 1
	ReasonNotStatic
	ReasonStrictInvalid
	ReasonStaticFailed
	ReasonCached
)

func (r CacheReason) String() string {
	switch r {
	case ReasonNotFound:
		return "not-found"
	case ReasonNotStatic:
		return "not-static"
	case ReasonStrictInvalid:
		return "strict-invalid"
	case ReasonStaticFailed:
		return "static-failed"
	case ReasonCached:
		return "static"
	}

	return "unknown"
}

// CacheVerdict is the cached outcome of resolving one module name.
type CacheVerdict struct {
	Reason CacheReason
	Record *ModuleRecord
	Errors []StructuredError
}

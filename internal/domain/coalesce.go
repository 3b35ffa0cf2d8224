package domain

// CoalesceStr returns the first non-empty string from vals, or "".
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Float64FromPtrWithDefault returns the first non-nil value, or fallback
// when every pointer is nil.
func Float64FromPtrWithDefault(fallback float64, ptrs ...*float64) float64 {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

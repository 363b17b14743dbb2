package utils

// Ptr returns a pointer to a copy of v, for optional request fields.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or fallback when the backend sent null.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

package pure_utils

// Map returns a new slice with the same length as src, with every element
// transformed by f. The result is never nil, so callers can hand it straight
// to a JSON encoder and get [] instead of null.
func Map[T, U any](src []T, f func(T) U) []U {
	out := make([]U, len(src))
	for i := range src {
		out[i] = f(src[i])
	}
	return out
}

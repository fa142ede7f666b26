package types

// Shorten returns the first maxlen characters of s.
func Shorten(s string, maxlen int) string {
	return s[:min(maxlen, len(s))]
}

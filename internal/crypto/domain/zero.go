package domain

// Zero overwrites key material in place so secrets do not linger in memory
// after use. Safe to call on a nil slice.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

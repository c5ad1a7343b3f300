package common

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Used to clear password material once a derived form exists.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

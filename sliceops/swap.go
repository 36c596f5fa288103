// Package sliceops converts between the little-endian byte order used on
// the air and the big-endian order of crypto primitives and display forms.
package sliceops

// SwapBuf returns a reversed copy of in; in is left untouched.
func SwapBuf(in []byte) []byte {
	a := make([]byte, len(in))
	for i, v := range in {
		a[len(in)-1-i] = v
	}
	return a
}

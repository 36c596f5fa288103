package bitfield

// Bit labels one bit position of a flags value.
type Bit struct {
	Index uint
	Label string
}

// Table is an ordered list of labelled bits.
type Table []Bit

// Decode returns the labels of the bits set in value, in table order, and
// the set bits below width that no entry claims.
func Decode(width uint, value uint64, t Table) (labels []string, residual uint64) {
	mask := value
	for _, b := range t {
		if b.Index >= 64 {
			continue
		}
		bit := uint64(1) << b.Index
		if value&bit == 0 {
			continue
		}
		labels = append(labels, b.Label)
		mask &^= bit
	}

	if width < 64 {
		mask &= (uint64(1) << width) - 1
	}
	return labels, mask
}

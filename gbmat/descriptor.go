package gbmat

// Descriptor toggles the optional behaviors MxM and EWiseAdd accept:
// the transpose/mask/clear-first knobs a masked, transposable multiply
// needs, expressed as descriptor fields rather than separate function
// variants.
type Descriptor struct {
	TransposeA bool
	TransposeB bool

	Mask           *Matrix
	MaskComplement bool
	// MaskStructural treats Mask's pattern alone as the predicate,
	// ignoring stored values; otherwise a stored value is only active
	// when it is "truthy" (nonzero / true).
	MaskStructural bool

	// ClearFirst zeroes C's prior contents before the result is written,
	// rather than accumulating into whatever C already held.
	ClearFirst bool
}

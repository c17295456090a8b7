package weights

// ZeroUV is a degenerate univariate distribution at 0. It satisfies
// distuv.Rander so that it can be passed to NewLinearUV.
type ZeroUV struct{}

// NewZeroUV returns a new ZeroUV
func NewZeroUV() ZeroUV {
	return ZeroUV{}
}

// Rand always returns 0
func (ZeroUV) Rand() float64 {
	return 0
}

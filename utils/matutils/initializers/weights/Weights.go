// Package weights initializes the weight matrices of linear agents.
// Weight matrices hold one row per action and one column per feature.
package weights

import "gonum.org/v1/gonum/mat"

// Initializer fills a weight matrix in place
type Initializer interface {
	Initialize(weights *mat.Dense)
}

// NewZero returns an Initializer which sets every weight to zero
func NewZero() Initializer {
	return NewLinearUV(ZeroUV{})
}

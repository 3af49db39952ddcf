package embeddings

import (
	"fmt"
	"math"
)

// NormalizeL2 returns a new vector normalized to unit L2 norm.
func NormalizeL2(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	n := math.Sqrt(sum)
	out := make([]float32, len(v))
	if n == 0 {
		copy(out, v)
		return out
	}
	inv := 1.0 / n
	for i := range v {
		out[i] = float32(float64(v[i]) * inv)
	}
	return out
}

// normalizeAll normalizes every vector and checks that the batch has the
// expected size and a single non-zero dimension. An all-zero vector has no
// direction and is rejected.
func normalizeAll(vectors [][]float32, want int) ([][]float32, error) {
	if len(vectors) != want {
		return nil, fmt.Errorf("%w: got %d vectors for %d inputs", ErrModel, len(vectors), want)
	}
	out := make([][]float32, len(vectors))
	dim := 0
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: empty embedding for input %d", ErrModel, i)
		}
		if dim == 0 {
			dim = len(v)
		}
		if len(v) != dim {
			return nil, fmt.Errorf("%w: %w: input %d has dim %d, want %d", ErrModel, ErrVectorLengthMismatch, i, len(v), dim)
		}
		if isZero(v) {
			return nil, fmt.Errorf("%w: zero vector for input %d", ErrModel, i)
		}
		out[i] = NormalizeL2(v)
	}
	return out, nil
}

func isZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// meanPool averages token vectors into a single sentence vector.
func meanPool(tokens [][]float64) ([]float32, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no token vectors to pool", ErrModel)
	}
	dim := len(tokens[0])
	acc := make([]float64, dim)
	for _, tok := range tokens {
		if len(tok) != dim {
			return nil, fmt.Errorf("%w: %w: token dim %d, want %d", ErrModel, ErrVectorLengthMismatch, len(tok), dim)
		}
		for j, x := range tok {
			acc[j] += x
		}
	}
	out := make([]float32, dim)
	n := float64(len(tokens))
	for j := range acc {
		out[j] = float32(acc[j] / n)
	}
	return out, nil
}

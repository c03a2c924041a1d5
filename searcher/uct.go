package searcher

import "math"

type uct struct {
	c    float64
	logN float64
}

func newUCT(c float64, N int) *uct {
	if N <= 0 {
		panic("N must be positive")
	}
	return &uct{c: c, logN: math.Log(float64(N))}
}

func (u uct) evaluate(mean float64, n int) float64 {
	if n <= 0 {
		panic("n must be positive")
	}
	// UCT = mean + c*sqrt(ln(N)/n)
	return mean + u.c*math.Sqrt(u.logN/float64(n))
}

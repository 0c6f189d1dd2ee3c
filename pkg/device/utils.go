package device

import "golang.org/x/exp/rand"

func clearf32(a []float32) {
	for i := range a {
		a[i] = 0
	}
}

func randf32(a []float32) {
	for i := range a {
		a[i] = rand.Float32()*2 - 1
	}
}

func sumf32(a, b, c []float32) {
	for i := range a {
		sum := a[i] + b[i]
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}
		c[i] = sum
	}
}

func allocf32(n int) []float32 {
	return make([]float32, n)
}

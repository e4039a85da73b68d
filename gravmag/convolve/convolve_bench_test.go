package convolve

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-gravmag/gravmag/bttb"
)

func BenchmarkOperatorMulVec(b *testing.B) {
	for _, n := range []int{16, 64, 128} {
		b.Run(fmt.Sprintf("%dx%d", n, n), func(b *testing.B) {
			rng := rand.New(rand.NewSource(1))
			m := randomMetadata(rng, bttb.Symmetric, bttb.Symmetric, n, n)
			L, err := EigenvaluesBCCB(m, RowOrdering)
			if err != nil {
				b.Fatal(err)
			}
			op, err := NewOperator(L, n, n, RowOrdering, 1)
			if err != nil {
				b.Fatal(err)
			}
			v := randomVector(rng, n*n)
			dst := make([]float64, n*n)

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				op.MulVecTo(dst, v)
			}
		})
	}
}

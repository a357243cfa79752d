package packedcolor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAverages_Filled(t *testing.T) {
	for v := uint8(0); v < NumColors; v++ {
		a := assert.New(t)
		s := New(7, 3, 4)
		s.Fill(v)
		avg := s.ComputeAverages()
		a.Len(avg, 3)
		for _, row := range avg {
			a.Len(row, 4)
			for _, x := range row {
				a.Equal(float64(v), x)
			}
		}
	}
}

func TestComputeAverages(t *testing.T) {
	a := assert.New(t)
	s := New(4, 2, 2)
	s.SetColor(0, 0, 0, 3)
	s.SetColor(1, 0, 0, 1)
	s.SetColor(2, 1, 1, 2)
	avg := s.ComputeAverages()
	a.Equal([][]float64{{1, 0}, {0, 0.5}}, avg)
}

func TestTopNByColor(t *testing.T) {
	var tt = []struct {
		caseName string
		n        int
		expected []int
	}{
		{caseName: "first_two", n: 2, expected: []int{3, 5}},
		{caseName: "all", n: 10, expected: []int{3, 5, 7}},
		{caseName: "zero", n: 0, expected: []int{}},
	}
	for _, v := range tt {
		t.Run(v.caseName, func(t *testing.T) {
			a := assert.New(t)
			s := New(10, 2, 3)
			for _, u := range []int{7, 5, 3} {
				s.SetColor(u, 1, 2, 3)
			}
			// same color in another cell must not count
			s.SetColor(1, 1, 1, 3)
			a.Equal(v.expected, s.TopNByColor(1, 2, 3, v.n))
		})
	}
}

func TestTopNByColor_NoMatch(t *testing.T) {
	a := assert.New(t)
	s := New(5, 1, 1)
	a.Empty(s.TopNByColor(0, 0, 2, 3))
}

func newRankingStore() *Store {
	s := New(4, 2, 2)
	s.SetColor(1, 0, 1, 1) // 1*2 = 2
	s.SetColor(2, 0, 0, 2) // 2*1 = 2
	s.SetColor(3, 0, 0, 1) // 1*1 = 1
	s.SetColor(0, 1, 1, 3) // 3*2 = 6, test 1 only
	return s
}

func TestTopNWeightedInTest(t *testing.T) {
	a := assert.New(t)
	s := newRankingStore()
	a.Equal([]UserScore{
		{User: 1, Score: 2},
		{User: 2, Score: 2},
		{User: 3, Score: 1},
		{User: 0, Score: 0},
	}, s.TopNWeightedInTest(0, 4))

	a.Equal([]UserScore{
		{User: 1, Score: 2},
		{User: 2, Score: 2},
	}, s.TopNWeightedInTest(0, 2))

	a.Equal([]UserScore{
		{User: 0, Score: 6},
	}, s.TopNWeightedInTest(1, 1))

	a.Len(s.TopNWeightedInTest(0, 100), 4)
	a.Empty(s.TopNWeightedInTest(0, 0))
}

func TestTopNWeightedOverall(t *testing.T) {
	a := assert.New(t)
	s := newRankingStore()
	a.Equal([]UserScore{
		{User: 0, Score: 6},
		{User: 1, Score: 2},
		{User: 2, Score: 2},
		{User: 3, Score: 1},
	}, s.TopNWeightedOverall(10))
}

func TestTopNWeightedOverall_NoTestWeight(t *testing.T) {
	a := assert.New(t)
	s := New(2, 3, 1)
	s.SetColor(0, 0, 0, 2)
	s.SetColor(1, 2, 0, 2)
	// both users score 2 regardless of the test index
	a.Equal([]UserScore{
		{User: 0, Score: 2},
		{User: 1, Score: 2},
	}, s.TopNWeightedOverall(2))
}

func TestTopNWeighted_Stability(t *testing.T) {
	a := assert.New(t)
	s := New(50, 1, 2)
	s.Fill(1)
	rs := s.TopNWeightedInTest(0, 50)
	for i, r := range rs {
		a.Equal(i, r.User)
		a.Equal(3, r.Score)
	}
}

func TestColorCounts(t *testing.T) {
	a := assert.New(t)
	s := New(3, 1, 2)
	s.SetColor(0, 0, 0, 3)
	s.SetColor(1, 0, 1, 2)
	a.Equal([NumColors]uint64{4, 0, 1, 1}, s.ColorCounts())
}

func TestScale(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping scale test in short mode")
	}
	a := assert.New(t)
	s := New(100000, 10, 5)
	s.Randomize(rand.New(rand.NewSource(7)))
	avg := s.ComputeAverages()
	a.Len(avg, 10)
	for _, row := range avg {
		a.Len(row, 5)
		for _, v := range row {
			a.GreaterOrEqual(v, 0.0)
			a.LessOrEqual(v, 3.0)
			a.InDelta(1.5, v, 0.05)
		}
	}
	a.Len(s.TopNWeightedOverall(10), 10)
}

func BenchmarkComputeAverages(b *testing.B) {
	s := New(100000, 10, 5)
	s.Randomize(rand.New(rand.NewSource(1)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.ComputeAverages()
	}
}

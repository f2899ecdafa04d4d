package interval

import (
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
)

func ivs(pairs ...int) []Interval[int] {
	if len(pairs)%2 != 0 {
		panic("odd coordinate count")
	}
	out := make([]Interval[int], 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Interval[int]{pairs[i], pairs[i+1]})
	}
	return out
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name string
		in   []Interval[int]
		want Set[int]
	}{
		{"empty", nil, nil},
		{"single", ivs(3, 7), Set[int](ivs(3, 7))},
		{"touching merge", ivs(0, 5, 5, 10), Set[int](ivs(0, 10))},
		{"overlap merge", ivs(0, 6, 4, 10), Set[int](ivs(0, 10))},
		{"unsorted input", ivs(10, 12, 2, 5, 4, 8), Set[int](ivs(2, 8, 10, 12))},
		{"contained", ivs(0, 20, 5, 10), Set[int](ivs(0, 20))},
		{"chain", ivs(0, 2, 2, 4, 4, 6, 8, 9), Set[int](ivs(0, 6, 8, 9))},
	}
	for _, tt := range tests {
		got := Union(tt.in)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestUnionIdempotent(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for trial := 0; trial < 100; trial++ {
		in := make([]Interval[int], 0, 20)
		for i := 0; i < 20; i++ {
			start := rnd.Intn(100)
			in = append(in, Interval[int]{start, start + 1 + rnd.Intn(10)})
		}
		once := Union(in)
		twice := Union(once)
		assert.Equal(t, once, twice)
	}
}

func TestIntersection(t *testing.T) {
	tests := []struct {
		name string
		in   []Interval[int]
		want Set[int]
	}{
		{"empty", nil, nil},
		{"single", ivs(0, 10), nil},
		{"basic", ivs(0, 10, 5, 15), Set[int](ivs(5, 10))},
		{"touching", ivs(0, 5, 5, 10), nil},
		{"disjoint", ivs(0, 2, 5, 8), nil},
		{"three-way", ivs(0, 10, 5, 15, 8, 20), Set[int](ivs(5, 15))},
		{"duplicate", ivs(3, 7, 3, 7), Set[int](ivs(3, 7))},
	}
	for _, tt := range tests {
		got := Intersection(tt.in)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestComplement(t *testing.T) {
	bounds := Must(0, 20)
	tests := []struct {
		name string
		in   Set[int]
		want Set[int]
	}{
		{"gaps", Set[int](ivs(2, 5, 10, 12)), Set[int](ivs(0, 2, 5, 10, 12, 20))},
		{"empty region", nil, Set[int](ivs(0, 20))},
		{"full cover", Set[int](ivs(0, 20)), nil},
		{"covers beyond bounds", Set[int](ivs(-5, 25)), nil},
		{"fully outside", Set[int](ivs(30, 40)), Set[int](ivs(0, 20))},
		{"partial left", Set[int](ivs(-5, 3)), Set[int](ivs(3, 20))},
		{"partial right", Set[int](ivs(15, 30)), Set[int](ivs(0, 15))},
	}
	for _, tt := range tests {
		got := Complement(bounds, tt.in)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestComplementInvolution(t *testing.T) {
	bounds := Must(0, 50)
	rnd := rand.New(rand.NewSource(2))
	for trial := 0; trial < 100; trial++ {
		in := make([]Interval[int], 0, 8)
		for i := 0; i < 8; i++ {
			start := rnd.Intn(60) - 5
			in = append(in, Interval[int]{start, start + 1 + rnd.Intn(12)})
		}
		a := Union(in)
		back := Complement(bounds, Complement(bounds, a))
		assert.True(t, back.Equal(a.Clip(bounds)), "region %v", a)
	}
}

func TestLength(t *testing.T) {
	expect.EQ(t, Set[int](nil).Length(), 0)
	expect.EQ(t, Set[int](ivs(0, 5, 10, 12)).Length(), 7)
	// Non-canonical input is merged before summing so overlaps are not
	// double-counted.
	expect.EQ(t, Set[int](ivs(0, 10, 5, 15)).Length(), 15)
}

func TestLengthAdditivity(t *testing.T) {
	a := Set[int](ivs(0, 5, 20, 30))
	b := Set[int](ivs(8, 12, 40, 45))
	expect.EQ(t, a.Union(b).Length(), a.Length()+b.Length())
}

func TestSetContains(t *testing.T) {
	s := Set[int](ivs(0, 5, 10, 15))
	tests := []struct {
		p    int
		want bool
	}{
		{-1, false}, {0, true}, {4, true}, {5, false},
		{9, false}, {10, true}, {14, true}, {15, false},
	}
	for _, tt := range tests {
		expect.EQ(t, s.Contains(tt.p), tt.want)
	}
}

func TestSetIntersect(t *testing.T) {
	a := Set[int](ivs(0, 10, 20, 30))
	b := Set[int](ivs(5, 25))
	want := Set[int](ivs(5, 10, 20, 25))
	assert.Equal(t, want, a.Intersect(b))
	// Commutative.
	assert.Equal(t, a.Intersect(b), b.Intersect(a))

	assert.Empty(t, a.Intersect(nil))
	assert.Empty(t, Set[int](ivs(0, 5)).Intersect(Set[int](ivs(5, 10))))
}

func TestSetIntersectCommutative(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for trial := 0; trial < 100; trial++ {
		mk := func() Set[int] {
			in := make([]Interval[int], 0, 6)
			for i := 0; i < 6; i++ {
				start := rnd.Intn(50)
				in = append(in, Interval[int]{start, start + 1 + rnd.Intn(10)})
			}
			return Union(in)
		}
		a, b := mk(), mk()
		assert.Equal(t, a.Intersect(b), b.Intersect(a))
	}
}

func TestSetOverlaps(t *testing.T) {
	a := Set[int](ivs(0, 5, 10, 15))
	assert.True(t, a.Overlaps(Set[int](ivs(4, 6))))
	assert.False(t, a.Overlaps(Set[int](ivs(5, 10))))
	assert.False(t, a.Overlaps(nil))
	// Agrees with Intersect.
	assert.True(t, len(a.Intersect(Set[int](ivs(4, 6)))) > 0)
	assert.Empty(t, a.Intersect(Set[int](ivs(5, 10))))
}

func TestClip(t *testing.T) {
	// Restricting rhythm labels to a query window [sampfrom, sampto).
	labels := Set[int](ivs(0, 1000, 2500, 4000))
	got := labels.Clip(Must(500, 3000))
	assert.Equal(t, Set[int](ivs(500, 1000, 2500, 3000)), got)
}

func TestEqual(t *testing.T) {
	assert.True(t, Set[int](ivs(0, 5, 5, 10)).Equal(Set[int](ivs(0, 10))))
	assert.True(t, Set[int](nil).Equal(Set[int]{}))
	assert.False(t, Set[int](ivs(0, 5)).Equal(Set[int](ivs(0, 6))))
}

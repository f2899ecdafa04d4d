package util

import "fmt"

// editGrid is the dynamic-programming table for Levenshtein distance,
// stored row-major.  Cell (i, j) holds the distance between the first i
// symbols of one sequence and the first j symbols of the other.
type editGrid struct {
	cols int
	cell []int
}

func newEditGrid(rows, cols int) editGrid {
	return editGrid{cols: cols, cell: make([]int, rows*cols)}
}

func (g editGrid) at(i, j int) int { return g.cell[i*g.cols+j] }

// step is a bitmask of the grid moves that can produce a cell's minimum: a
// diagonal move consumes one symbol from each sequence, a down move
// deletes a symbol from the first, and a right move inserts a symbol from
// the second.
type step uint8

const (
	stepDiagonal step = 1 << iota
	stepDown
	stepRight
)

// fill computes cell (i, j) from symbol slices r1, r2, and reports which
// moves achieve the minimum.  Cells (i-1, j-1), (i-1, j), and (i, j-1)
// must already be filled.
func (g editGrid) fill(i, j int, r1, r2 []byte) step {
	switch {
	case i == 0:
		g.cell[j] = j
		return 0
	case j == 0:
		g.cell[i*g.cols] = i
		return 0
	case r1[i-1] == r2[j-1]:
		g.cell[i*g.cols+j] = g.at(i-1, j-1)
		return stepDiagonal
	}
	downValue := g.at(i-1, j) + 1
	diagonalValue := g.at(i-1, j-1) + 1
	rightValue := g.at(i, j-1) + 1
	minValue := downValue
	if diagonalValue < minValue {
		minValue = diagonalValue
	}
	if rightValue < minValue {
		minValue = rightValue
	}
	g.cell[i*g.cols+j] = minValue

	var s step
	if downValue == minValue {
		s |= stepDown
	}
	if diagonalValue == minValue {
		s |= stepDiagonal
	}
	if rightValue == minValue {
		s |= stepRight
	}
	return s
}

// fillRow fills row i up to column col inclusive.
func (g editGrid) fillRow(i, col int, r1, r2 []byte) {
	for j := 0; j <= col; j++ {
		g.fill(i, j, r1, r2)
	}
}

// fillCol fills column j up to row row inclusive.
func (g editGrid) fillCol(j, row int, r1, r2 []byte) {
	for i := 0; i <= row; i++ {
		g.fill(i, j, r1, r2)
	}
}

// Distance computes the plain Levenshtein distance between two label
// strings: the number of insertions, deletions, and substitutions it takes
// to transform s1 into s2.  Unlike WindowDistance, the inputs may have any
// lengths; this is what rhythm-label snap correction uses.
func Distance(s1, s2 string) int {
	r1 := []byte(s1)
	r2 := []byte(s2)
	prev := make([]int, len(r2)+1)
	cur := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(r1); i++ {
		cur[0] = i
		for j := 1; j <= len(r2); j++ {
			if r1[i-1] == r2[j-1] {
				cur[j] = prev[j-1]
				continue
			}
			best := prev[j] // deletion
			if prev[j-1] < best {
				best = prev[j-1] // substitution
			}
			if cur[j-1] < best {
				best = cur[j-1] // insertion
			}
			cur[j] = best + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(r2)]
}

// WindowDistance computes the Levenshtein distance between two beat-symbol
// windows.  The returned value - distance - is the number of insertions,
// deletions, and substitutions it takes to transform one symbol sequence
// (s1) into another (s2).  Each step in the transformation "costs" one
// distance point.  Because the windows compared have a fixed symbol count,
// a missed beat (deletion) shifts later symbols into the window.  To
// account for this situation, we take in the symbols downstream of both
// windows (a1 and a2).  Note that s1 and s2 must have the same length.
//
// The grid is only partially filled: rows and columns are extended in
// lockstep along the diagonal, and past the window boundary a sequence is
// extended with its downstream symbols only while the cell minimum is
// still reachable through the corresponding deletion/insertion move.
func WindowDistance(s1, s2, a1, a2 string) (distance int) {
	if len(s1) != len(s2) {
		panic(fmt.Sprintf("s1 and s2 must have equal length: '%s', '%s'", s1, s2))
	}

	r1 := []byte(s1)
	r2 := []byte(s2)

	rows := len(r1)
	cols := len(r2)

	g := newEditGrid(rows+len(a1)+1, cols+len(a2)+1)

	i := 1
	iEnd := rows
	j := 1
	jEnd := cols

	var moves step
	for {
		if i <= iEnd {
			g.fillRow(i, j-1, r1, r2)
		}

		if j <= jEnd {
			g.fillCol(j, i-1, r1, r2)
		}

		moves = g.fill(i, j, r1, r2)

		if i < rows {
			i++
			j++
			continue
		}

		done := true
		if moves&stepDown != 0 && len(a2) > 0 {
			r2 = append(r2, a2[0])
			a2 = a2[1:]
			done = false
			j++
			jEnd++
		}
		if moves&stepRight != 0 && len(a1) > 0 {
			r1 = append(r1, a1[0])
			a1 = a1[1:]
			done = false
			i++
			iEnd++
		}
		if done {
			if g.at(rows, cols) <= g.at(i, j) {
				return g.at(rows, cols)
			}
			return g.at(i, j)
		}
	}
}

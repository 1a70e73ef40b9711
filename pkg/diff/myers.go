package diff

// EditKind classifies a line in an edit script.
type EditKind int

const (
	Equal  EditKind = iota // Line is unchanged between a and b.
	Insert                 // Line was inserted (present in b only).
	Delete                 // Line was deleted (present in a only).
)

// Edit is a single operation in an edit script produced by Myers.
type Edit struct {
	Kind EditKind
	Line string
}

// MaxEditDistance bounds the search in Myers. Inputs that need more edits
// get a script that deletes every line of a and inserts every line of b,
// which keeps memory at O(MaxEditDistance^2) instead of O((N+M)*D).
var MaxEditDistance = 2048

// Myers computes the shortest edit script to transform a into b using the
// Myers diff algorithm operating on whole lines.
//
// The algorithm runs in O((N+M)*D) time where N and M are the lengths of a
// and b, and D is the size of the minimum edit script.
func Myers(a, b []string) []Edit {
	n := len(a)
	m := len(b)

	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 || m == 0 {
		return replaceAll(a, b)
	}

	max := n + m
	if MaxEditDistance > 0 && max > MaxEditDistance {
		max = MaxEditDistance
	}
	offset := n + m
	v := make([]int, 2*offset+1)

	// trace[d] holds v[k] for k in [-d, d] after edit distance d.
	var trace [][]int

	for d := 0; d <= max; d++ {
		for k := -d; k <= d; k += 2 {
			idx := k + offset
			var x int
			if k == -d || (k != d && v[idx-1] < v[idx+1]) {
				x = v[idx+1] // move down (insert)
			} else {
				x = v[idx-1] + 1 // move right (delete)
			}
			y := x - k

			// Follow the diagonal (equal lines).
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}

			v[idx] = x

			if x >= n && y >= m {
				trace = append(trace, snapshot(v, offset, d))
				return backtrack(trace, a, b, d)
			}
		}
		trace = append(trace, snapshot(v, offset, d))
	}

	return replaceAll(a, b)
}

func snapshot(v []int, offset, d int) []int {
	snap := make([]int, 2*d+1)
	copy(snap, v[offset-d:offset+d+1])
	return snap
}

// replaceAll is the edit script that deletes all of a, then inserts all of b.
func replaceAll(a, b []string) []Edit {
	edits := make([]Edit, 0, len(a)+len(b))
	for _, line := range a {
		edits = append(edits, Edit{Kind: Delete, Line: line})
	}
	for _, line := range b {
		edits = append(edits, Edit{Kind: Insert, Line: line})
	}
	return edits
}

// backtrack reconstructs the edit script from the trace of v snapshots.
func backtrack(trace [][]int, a, b []string, dFinal int) []Edit {
	x := len(a)
	y := len(b)

	// Built in reverse.
	var edits []Edit

	for d := dFinal; d > 0; d-- {
		k := x - y
		vPrev := trace[d-1]
		at := func(k int) int { return vPrev[k+d-1] }

		var prevK int
		if k == -d || (k != d && at(k-1) < at(k+1)) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}

		prevX := at(prevK)
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			edits = append(edits, Edit{Kind: Equal, Line: a[x]})
		}

		if k == prevK+1 {
			x--
			edits = append(edits, Edit{Kind: Delete, Line: a[x]})
		} else {
			y--
			edits = append(edits, Edit{Kind: Insert, Line: b[y]})
		}
	}

	for x > 0 && y > 0 {
		x--
		y--
		edits = append(edits, Edit{Kind: Equal, Line: a[x]})
	}

	for i, j := 0, len(edits)-1; i < j; i, j = i+1, j-1 {
		edits[i], edits[j] = edits[j], edits[i]
	}
	return edits
}

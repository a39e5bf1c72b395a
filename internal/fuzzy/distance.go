package fuzzy

// Distance computes a Damerau-Levenshtein edit distance capped at
// maxDistance. A return value of maxDistance+1 means the strings are
// further apart than the bound; a distance of exactly maxDistance is
// still a valid match.
//
// Two shortcuts keep the search cheap: a length-difference rejection
// before building the table, and a per-row abort once every cell in a
// row exceeds the bound.
func Distance(a, b string, maxDistance int) int {
	// Compare code points, not bytes, so accented titles cost one
	// edit per character.
	ra := []rune(a)
	rb := []rune(b)

	if diff := len(ra) - len(rb); diff > maxDistance || -diff > maxDistance {
		return maxDistance + 1
	}

	lenA := len(ra)
	lenB := len(rb)

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	d := make([][]int, lenA+1)
	for i := range d {
		d[i] = make([]int, lenB+1)
		d[i][0] = i
	}
	for j := 0; j <= lenB; j++ {
		d[0][j] = j
	}

	for i := 1; i <= lenA; i++ {
		bestInRow := maxDistance + 1
		for j := 1; j <= lenB; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			cell := min(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)

			// Adjacent transposition costs 1, not 2.
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				cell = min(cell, d[i-2][j-2]+cost)
			}

			d[i][j] = cell
			bestInRow = min(bestInRow, cell)
		}

		if bestInRow > maxDistance {
			return maxDistance + 1
		}
	}

	return d[lenA][lenB]
}

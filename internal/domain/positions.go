package domain

import "slices"

// ResolveInsertPosition returns where a new member lands in a playlist that
// currently has count members. A nil request appends. Requests past the end
// are clamped to count+1 so the run stays contiguous.
func ResolveInsertPosition(requested *int, count int) int {
	appendAt := count + 1
	if requested == nil || *requested > appendAt {
		return appendAt
	}
	if *requested < 1 {
		return 1
	}
	return *requested
}

// IsDense reports whether positions are exactly {1..len(positions)}.
func IsDense(positions []int) bool {
	sorted := slices.Clone(positions)
	slices.Sort(sorted)
	for i, p := range sorted {
		if p != i+1 {
			return false
		}
	}
	return true
}

// Positions extracts the position of each entry, preserving order.
func Positions(entries []PlaylistEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Position
	}
	return out
}

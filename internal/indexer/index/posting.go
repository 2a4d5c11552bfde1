package index

// PostingList holds the positions of the records containing a term, in
// ascending order and without duplicates.
type PostingList []int

// Contains reports whether pos is in the list.
func (p PostingList) Contains(pos int) bool {
	lo, hi := 0, len(p)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case p[mid] == pos:
			return true
		case p[mid] < pos:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return false
}

type TermEntry struct {
	Term     string
	Postings PostingList
}

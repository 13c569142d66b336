package registry

// SortByAddress sorts entries ascending by address in place with heap sort: build a
// max-heap over the addresses, then repeatedly move the maximum to the tail.
func SortByAddress(entries []Entry) {
	n := len(entries)
	for start := n/2 - 1; start >= 0; start-- {
		siftDown(entries, start, n-1)
	}
	for end := n - 1; end > 0; end-- {
		entries[0], entries[end] = entries[end], entries[0]
		siftDown(entries, 0, end-1)
	}
}

// siftDown restores the heap property for the subtree rooted at start, considering
// only indices up to and including end.
func siftDown(entries []Entry, start, end int) {
	root := start
	for root*2+1 <= end {
		child := root*2 + 1
		swap := root
		if entries[swap].Addr < entries[child].Addr {
			swap = child
		}
		if child+1 <= end && entries[swap].Addr < entries[child+1].Addr {
			swap = child + 1
		}
		if swap == root {
			return
		}
		entries[root], entries[swap] = entries[swap], entries[root]
		root = swap
	}
}

package solver

// heapItem is one entry in the scoped-search priority queue.
type heapItem struct {
	node int
	dist int64
}

// minHeap is a concrete-typed binary min-heap, avoiding the interface
// boxing of container/heap for a structure popped millions of times
// across a build.
type minHeap struct {
	items []heapItem
}

func (h *minHeap) len() int { return len(h.items) }

func (h *minHeap) push(node int, dist int64) {
	h.items = append(h.items, heapItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) pop() heapItem {
	top := h.items[0]
	n := len(h.items) - 1
	h.items[0] = h.items[n]
	h.items = h.items[:n]
	if n > 0 {
		h.siftDown(0)
	}
	return top
}

func (h *minHeap) reset() {
	h.items = h.items[:0]
}

// siftUp uses hole-sift: saves the floating item and does one
// assignment per level instead of three (swap).
func (h *minHeap) siftUp(i int) {
	item := h.items[i]
	for i > 0 {
		parent := (i - 1) / 2
		if item.dist >= h.items[parent].dist {
			break
		}
		h.items[i] = h.items[parent]
		i = parent
	}
	h.items[i] = item
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	item := h.items[i]
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if right := child + 1; right < n && h.items[right].dist < h.items[child].dist {
			child = right
		}
		if item.dist <= h.items[child].dist {
			break
		}
		h.items[i] = h.items[child]
		i = child
	}
	h.items[i] = item
}

package storage

// History records the order in which items were last viewed.
//
// Each id appears at most once: viewing an item again moves it to the
// newest position. An index from id to list node keeps Add and Remove O(1).
// History is not safe for concurrent use; MemoryStore guards it with its own lock.
type History struct {
	index map[int]*historyNode
	head  *historyNode // oldest
	tail  *historyNode // newest
}

type historyNode struct {
	item Item
	prev *historyNode
	next *historyNode
}

// NewHistory creates an empty, unbounded history
func NewHistory() *History {
	return &History{index: make(map[int]*historyNode)}
}

// Add records a view of item. Nil items are ignored.
func (h *History) Add(item Item) {
	if item == nil || item.Core() == nil {
		return
	}

	id := item.Core().ID
	if node, ok := h.index[id]; ok {
		h.unlink(node)
	}
	h.linkLast(item)
}

// Remove drops id from the history if present
func (h *History) Remove(id int) {
	if node, ok := h.index[id]; ok {
		h.unlink(node)
	}
}

// Items returns the viewed items, oldest first. The slice is a fresh copy.
func (h *History) Items() []Item {
	items := make([]Item, 0, len(h.index))
	for n := h.head; n != nil; n = n.next {
		items = append(items, n.item)
	}
	return items
}

// Len returns the number of distinct ids in the history
func (h *History) Len() int {
	return len(h.index)
}

// Clear empties the history
func (h *History) Clear() {
	h.index = make(map[int]*historyNode)
	h.head = nil
	h.tail = nil
}

func (h *History) linkLast(item Item) {
	node := &historyNode{item: item}

	if h.tail == nil {
		h.head = node
	} else {
		h.tail.next = node
		node.prev = h.tail
	}
	h.tail = node

	h.index[item.Core().ID] = node
}

func (h *History) unlink(node *historyNode) {
	switch {
	case node == h.head && node == h.tail:
		h.head = nil
		h.tail = nil
	case node == h.head:
		h.head = node.next
		h.head.prev = nil
	case node == h.tail:
		h.tail = node.prev
		h.tail.next = nil
	default:
		node.prev.next = node.next
		node.next.prev = node.prev
	}
	node.prev = nil
	node.next = nil

	delete(h.index, node.item.Core().ID)
}

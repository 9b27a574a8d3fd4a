package crawler

// batch - ID, уже отданные за один обход поискового URL
type batch struct {
	seen map[string]struct{}
}

func newBatch() *batch {
	return &batch{seen: make(map[string]struct{})}
}

// accept возвращает false, если ID уже встречался в этом обходе
func (b *batch) accept(id string) bool {
	if _, ok := b.seen[id]; ok {
		return false
	}
	b.seen[id] = struct{}{}
	return true
}

func (b *batch) size() int {
	return len(b.seen)
}

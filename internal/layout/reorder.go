package layout

// Ordering is a session-local display order over a source list. It is never persisted:
// Reset throws the reordering away and starts over from the canonical order.
type Ordering[T any] struct {
	id    func(T) string
	items []T
}

func NewOrdering[T any](source []T, id func(T) string) *Ordering[T] {
	o := &Ordering[T]{id: id}
	o.Reset(source)
	return o
}

// Reset replaces the current order with source.
func (o *Ordering[T]) Reset(source []T) {
	o.items = clone(source)
}

// Items returns the current display order.
func (o *Ordering[T]) Items() []T {
	return clone(o.items)
}

// IndexOf returns the position of id, or -1.
func (o *Ordering[T]) IndexOf(id string) int {
	for i, it := range o.items {
		if o.id(it) == id {
			return i
		}
	}
	return -1
}

// Reorder moves draggedID to targetIndex. It reports false and leaves the order alone when the
// dragged entry is missing, the target is out of range, or the target is the dragged entry.
func (o *Ordering[T]) Reorder(draggedID string, targetIndex int) bool {
	from := o.IndexOf(draggedID)
	if from < 0 || targetIndex < 0 || targetIndex >= len(o.items) || targetIndex == from {
		return false
	}
	moved := o.items[from]
	rest := make([]T, 0, len(o.items))
	rest = append(rest, o.items[:from]...)
	rest = append(rest, o.items[from+1:]...)

	out := make([]T, 0, len(o.items))
	out = append(out, rest[:targetIndex]...)
	out = append(out, moved)
	out = append(out, rest[targetIndex:]...)
	o.items = out
	return true
}

package view

// window holds the most recent elements read, up to its capacity, overwriting
// the oldest once full.
type window[T comparable] struct {
	buf   []T
	start int
	size  int
}

func newWindow[T comparable](capacity int) *window[T] {
	return &window[T]{buf: make([]T, capacity)}
}

func (w *window[T]) push(value T) {
	if w.size < len(w.buf) {
		w.buf[(w.start+w.size)%len(w.buf)] = value
		w.size++
		return
	}

	w.buf[w.start] = value
	w.start = (w.start + 1) % len(w.buf)
}

// equals reports whether the window is full and holds exactly seq, oldest first.
func (w *window[T]) equals(seq []T) bool {
	if w.size != len(seq) {
		return false
	}

	for i, expected := range seq {
		if w.buf[(w.start+i)%len(w.buf)] != expected {
			return false
		}
	}
	return true
}

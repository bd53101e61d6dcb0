package worklist

// Worklist is a FIFO queue that holds every element at most once.
// Adding an element that is already pending is a no-op.
type Worklist[T comparable] struct {
	list    []T
	pending map[T]struct{}
}

// Start worklist execution with provided `starting` element and an iteration
// function. The iteration function exposes the next element and a function with
// which to add more elements to the worklist.
func Start[T comparable](start T, do func(next T, add func(el T))) {
	StartV([]T{start}, do)
}

// Start worklist execution with a preloaded queue and an iteration
// function. The iteration function exposes the next element and a function with
// which to add more elements to the worklist.
func StartV[T comparable](start []T, do func(next T, add func(el T))) {
	W := Empty[T]()
	for _, e := range start {
		W.Add(e)
	}

	W.Process(do)
}

func Empty[T comparable]() Worklist[T] {
	return Worklist[T]{pending: make(map[T]struct{})}
}

func (w *Worklist[T]) GetNext() (ret T) {
	if len(w.list) == 0 {
		return
	}
	next := w.list[0]
	w.list = w.list[1:]
	delete(w.pending, next)
	return next
}

func (w *Worklist[T]) IsEmpty() bool {
	return len(w.list) == 0
}

func (w *Worklist[T]) Len() int {
	return len(w.list)
}

// Process drains the worklist.
func (w *Worklist[T]) Process(
	do func(
		next T,
		add func(element T))) {
	w.ProcessUntil(func(next T, add func(T)) bool {
		do(next, add)
		return true
	})
}

// ProcessUntil drains the worklist until it is empty or the iteration function
// returns false.
func (w *Worklist[T]) ProcessUntil(
	do func(
		next T,
		add func(element T)) bool) {
	for !w.IsEmpty() {
		if !do(w.GetNext(), w.Add) {
			return
		}
	}
}

func (w *Worklist[T]) Add(el T) {
	if w.pending == nil {
		w.pending = make(map[T]struct{})
	}
	if _, found := w.pending[el]; found {
		return
	}
	w.pending[el] = struct{}{}
	w.list = append(w.list, el)
}

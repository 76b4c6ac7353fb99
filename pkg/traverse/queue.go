package traverse

// Queue is a FIFO queue backed by a growable ring buffer. The zero value is
// an empty queue ready to use.
type Queue[T any] struct {
	buf  []T
	head int
	n    int
}

// Push appends v to the back of the queue.
func (q *Queue[T]) Push(v T) {
	if q.n == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.n)%len(q.buf)] = v
	q.n++
}

// Pop removes and returns the front element. The second result is false
// when the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if q.n == 0 {
		return zero, false
	}
	v := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return v, true
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int { return q.n }

func (q *Queue[T]) grow() {
	size := max(2*len(q.buf), 8)
	buf := make([]T, size)
	for i := range q.n {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}

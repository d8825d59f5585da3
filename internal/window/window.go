package window

// Window кольцевой буфер фиксированной емкости для последних N отсчетов.
// Курсор всегда указывает на следующий слот записи; после первого
// оборота буфер навсегда считается заполненным и логически содержит
// последние N значений.
type Window struct {
	data   []float64
	pos    int
	filled bool
	cap    int
}

// New создает окно заданной емкости (capacity > 0)
func New(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{
		data: make([]float64, capacity),
		cap:  capacity,
	}
}

// Push записывает значение в текущий слот и сдвигает курсор.
// Всегда успешен, O(1).
func (w *Window) Push(v float64) {
	w.data[w.pos] = v
	w.pos++
	if w.pos >= w.cap {
		w.pos = 0
		w.filled = true
	}
}

// Ready сообщает, заполнено ли окно хотя бы один раз
func (w *Window) Ready() bool {
	return w.filled
}

// Len возвращает число записанных значений (не больше емкости)
func (w *Window) Len() int {
	if w.filled {
		return w.cap
	}
	return w.pos
}

// Capacity возвращает емкость окна
func (w *Window) Capacity() int {
	return w.cap
}

// Snapshot возвращает последние N значений в хронологическом порядке
// (старые первыми), линеаризуя от точки оборота. До заполнения окна
// частичное чтение не предоставляется — возвращается nil.
func (w *Window) Snapshot() []float64 {
	if !w.filled {
		return nil
	}
	out := make([]float64, w.cap)
	copy(out, w.data[w.pos:])
	copy(out[w.cap-w.pos:], w.data[:w.pos])
	return out
}

package scheduler

import "time"

// Clock монотонные миллисекундные часы цикла. Интерфейс нужен, чтобы
// в тестах управлять временем вручную.
type Clock interface {
	NowMillis() int64
	Sleep(d time.Duration)
}

// SystemClock системные часы: миллисекунды от запуска процесса по
// монотонному источнику time
type SystemClock struct {
	start time.Time
}

// NewSystemClock создает системные часы
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// NowMillis возвращает миллисекунды с момента создания часов
func (c *SystemClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// Sleep приостанавливает цикл на заданный интервал
func (c *SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

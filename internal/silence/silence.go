package silence

import "sync/atomic"

// Input интерфейс цифрового входа кнопки silence.
// Read возвращает true, пока вход активен; антидребезг — обязанность
// этого пакета, не входа.
type Input interface {
	Read() bool
}

// Toggle переключатель беззвучного режима с антидребезгом по уровню:
// вход опрашивается каждую итерацию планировщика, переключение
// принимается только если вход активен И с последнего принятого
// переключения прошло не меньше рефрактерного периода. Опрос вместо
// прерывания намеренный: худшая задержка распознавания ограничена
// одним тиком планировщика, для кнопки оператора этого достаточно.
type Toggle struct {
	input        Input
	refractoryMs int64
	lastToggleMs int64
	silenced     bool
}

// DefaultRefractoryMs рефрактерный период по умолчанию
const DefaultRefractoryMs = 500

// NewToggle создает переключатель silence
func NewToggle(input Input, refractoryMs int64) *Toggle {
	if refractoryMs <= 0 {
		refractoryMs = DefaultRefractoryMs
	}
	return &Toggle{
		input:        input,
		refractoryMs: refractoryMs,
	}
}

// Check опрашивает вход и возвращает true, если переключение принято.
// lastToggleMs стартует с нуля, поэтому рефрактерный период покрывает
// и первые полсекунды после запуска — как в исходном устройстве.
func (t *Toggle) Check(nowMs int64) bool {
	if t.input == nil || !t.input.Read() {
		return false
	}
	if nowMs-t.lastToggleMs < t.refractoryMs {
		return false
	}

	t.silenced = !t.silenced
	t.lastToggleMs = nowMs
	return true
}

// Silenced возвращает текущее состояние беззвучного режима
func (t *Toggle) Silenced() bool {
	return t.silenced
}

// PressInput одноразовый флаг нажатия, устанавливаемый HTTP обработчиком.
// Запись идет из goroutine HTTP сервера, чтение — из цикла планировщика,
// поэтому флаг атомарный. Read снимает флаг, имитируя отпускание кнопки.
type PressInput struct {
	pressed atomic.Bool
}

// NewPressInput создает вход-кнопку
func NewPressInput() *PressInput {
	return &PressInput{}
}

// Press отмечает нажатие кнопки
func (p *PressInput) Press() {
	p.pressed.Store(true)
}

// Read возвращает true ровно один раз на каждое нажатие
func (p *PressInput) Read() bool {
	return p.pressed.CompareAndSwap(true, false)
}

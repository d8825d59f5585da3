package silence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// levelInput вход с управляемым уровнем
type levelInput struct {
	active bool
}

func (l *levelInput) Read() bool {
	return l.active
}

func TestToggleIgnoresInactiveInput(t *testing.T) {
	input := &levelInput{}
	toggle := NewToggle(input, 500)

	assert.False(t, toggle.Check(1000))
	assert.False(t, toggle.Silenced())
}

func TestToggleRefractoryWindow(t *testing.T) {
	// Два активных чтения с интервалом меньше 500 мс дают ровно одно
	// переключение; с интервалом >= 500 мс — два
	input := &levelInput{active: true}
	toggle := NewToggle(input, 500)

	assert.True(t, toggle.Check(600))
	assert.True(t, toggle.Silenced())

	assert.False(t, toggle.Check(900))
	assert.True(t, toggle.Silenced())

	assert.True(t, toggle.Check(1100))
	assert.False(t, toggle.Silenced())
}

func TestToggleBootRefractory(t *testing.T) {
	// Первые полсекунды после запуска нажатие не принимается
	input := &levelInput{active: true}
	toggle := NewToggle(input, 500)

	assert.False(t, toggle.Check(100))
	assert.False(t, toggle.Check(499))
	assert.True(t, toggle.Check(500))
}

func TestToggleHeldButtonDebounced(t *testing.T) {
	// Удерживаемая кнопка при опросе каждую миллисекунду переключает
	// состояние не чаще одного раза за рефрактерный период
	input := &levelInput{active: true}
	toggle := NewToggle(input, 500)

	toggles := 0
	for now := int64(500); now < 2000; now++ {
		if toggle.Check(now) {
			toggles++
		}
	}
	assert.Equal(t, 3, toggles)
}

func TestToggleNilInput(t *testing.T) {
	toggle := NewToggle(nil, 500)
	assert.False(t, toggle.Check(1000))
}

func TestToggleDefaultRefractory(t *testing.T) {
	input := &levelInput{active: true}
	toggle := NewToggle(input, 0)

	assert.False(t, toggle.Check(499))
	assert.True(t, toggle.Check(500))
}

func TestPressInputSingleShot(t *testing.T) {
	input := NewPressInput()

	assert.False(t, input.Read())

	input.Press()
	assert.True(t, input.Read())
	assert.False(t, input.Read())
}

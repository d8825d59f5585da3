package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordSink запоминает вызовы для проверок
type recordSink struct {
	fires []fireCall
	latch []bool
}

type fireCall struct {
	channel Channel
	pattern Pattern
}

func (r *recordSink) Fire(channel Channel, p Pattern) {
	r.fires = append(r.fires, fireCall{channel: channel, pattern: p})
}

func (r *recordSink) SetLatch(on bool) {
	r.latch = append(r.latch, on)
}

func TestMultiFansOutFire(t *testing.T) {
	a := &recordSink{}
	b := &recordSink{}
	m := NewMulti(a, b, nil)

	m.Fire(ChannelVisual, Pattern{Pulses: 5, PulseMs: 100})

	assert.Len(t, a.fires, 1)
	assert.Len(t, b.fires, 1)
	assert.Equal(t, ChannelVisual, a.fires[0].channel)
	assert.Equal(t, 5, a.fires[0].pattern.Pulses)
}

func TestMultiFansOutLatch(t *testing.T) {
	a := &recordSink{}
	b := &recordSink{}
	m := NewMulti(a, b)

	m.SetLatch(true)
	m.SetLatch(false)

	assert.Equal(t, []bool{true, false}, a.latch)
	assert.Equal(t, []bool{true, false}, b.latch)
}

func TestMultiEmptyIsNoop(t *testing.T) {
	m := NewMulti()
	assert.NotPanics(t, func() {
		m.Fire(ChannelAudible, Pattern{Pulses: 1, PulseMs: 50})
		m.SetLatch(true)
	})
}

package hal

import "time"

const tickDur = time.Millisecond

// hostTime turns wall-clock progress into a 1ms tick stream.
type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) step() { t.advance(time.Now()) }

// advance publishes every whole tick elapsed since the previous call. The first
// call publishes a single tick.
func (t *hostTime) advance(now time.Time) {
	if t.last.IsZero() {
		t.last = now
		t.publish(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / tickDur)
	if ticks == 0 {
		return
	}
	t.acc %= tickDur
	t.publish(ticks)
}

func (t *hostTime) publish(n uint64) {
	t.seq += n
	select {
	case t.ch <- t.seq:
	default:
	}
}

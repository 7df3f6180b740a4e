package buttons

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

type Button int

const (
	Next Button = iota
	Select
)

const (
	pollSlice = 25 * time.Millisecond
	debounce  = 50 * time.Millisecond
)

// Pair is the two front-panel buttons, active low with pull-ups
type Pair struct {
	pins [2]gpio.PinIn
	last [2]time.Time
}

// Open looks both pins up by name and arms them for falling edges
func Open(nextPin, selectPin string) (*Pair, error) {
	var pins [2]gpio.PinIn
	for i, name := range []string{nextPin, selectPin} {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("button pin %s not found", name)
		}
		pins[i] = p
	}
	return New(pins[0], pins[1])
}

func New(next, sel gpio.PinIn) (*Pair, error) {
	p := &Pair{pins: [2]gpio.PinIn{next, sel}}
	for _, pin := range p.pins {
		if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
			return nil, fmt.Errorf("failed to configure button %s: %w", pin, err)
		}
	}
	return p, nil
}

// Wait blocks until a button is pressed, the context is done or idle
// passes with no press. Bounces within the debounce window are dropped.
func (p *Pair) Wait(ctx context.Context, idle time.Duration) (Button, error) {
	deadline := time.Now().Add(idle)
	for {
		for i, pin := range p.pins {
			if !pin.WaitForEdge(pollSlice) {
				continue
			}
			now := time.Now()
			if now.Sub(p.last[i]) < debounce {
				continue
			}
			p.last[i] = now
			return Button(i), nil
		}

		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if time.Now().After(deadline) {
			return 0, context.DeadlineExceeded
		}
	}
}

package servo

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
)

const (
	DefaultOpen  = 110
	DefaultClose = 60

	frequency = 50 * physic.Hertz
	period    = 20 * time.Millisecond
	minPulse  = 544 * time.Microsecond
	maxPulse  = 2400 * time.Microsecond
	settle    = 500 * time.Millisecond
)

// Latch drives the hobby servo that throws the lid bolt
type Latch struct {
	pin      gpio.PinOut
	openDeg  int
	closeDeg int
}

// Open looks the pin up by name (e.g. "GPIO18")
func Open(pinName string, openDeg, closeDeg int) (*Latch, error) {
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("servo pin %s not found", pinName)
	}
	return New(pin, openDeg, closeDeg), nil
}

func New(pin gpio.PinOut, openDeg, closeDeg int) *Latch {
	return &Latch{pin: pin, openDeg: openDeg, closeDeg: closeDeg}
}

func (l *Latch) Lock() error {
	if err := l.move(l.closeDeg); err != nil {
		return fmt.Errorf("failed to lock: %w", err)
	}
	return nil
}

func (l *Latch) Unlock() error {
	if err := l.move(l.openDeg); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}
	return nil
}

// move drives to deg, waits for the horn to settle and releases the pin so
// the servo does not hum against the bolt
func (l *Latch) move(deg int) error {
	if err := l.pin.PWM(duty(deg), frequency); err != nil {
		return err
	}
	time.Sleep(settle)
	return l.pin.Out(gpio.Low)
}

// duty maps 0-180 degrees onto a 544-2400 µs pulse in a 20 ms period
func duty(deg int) gpio.Duty {
	deg = max(0, min(180, deg))
	pulse := minPulse + (maxPulse-minPulse)*time.Duration(deg)/180
	return gpio.Duty(int64(gpio.DutyMax) * int64(pulse) / int64(period))
}

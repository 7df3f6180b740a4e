package servo

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestDuty(t *testing.T) {
	tests := []struct {
		deg  int
		want gpio.Duty
	}{
		{0, gpio.Duty(int64(gpio.DutyMax) * 544 / 20000)},
		{180, gpio.Duty(int64(gpio.DutyMax) * 2400 / 20000)},
		{-10, gpio.Duty(int64(gpio.DutyMax) * 544 / 20000)},
		{500, gpio.Duty(int64(gpio.DutyMax) * 2400 / 20000)},
	}
	for _, tt := range tests {
		if got := duty(tt.deg); got != tt.want {
			t.Errorf("duty(%d) = %d, want %d", tt.deg, got, tt.want)
		}
	}
	if duty(DefaultOpen) <= duty(DefaultClose) {
		t.Error("open position not beyond close position")
	}
}

func TestLockUnlockReleasesPin(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO18"}
	l := New(pin, DefaultOpen, DefaultClose)

	if err := l.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if pin.L != gpio.Low {
		t.Error("pin not released after Unlock")
	}
	if err := l.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
}

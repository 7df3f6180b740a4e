package power

import (
	"math"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

var calibrate = i2ctest.IO{Addr: DefaultAddr, W: []byte{regCalibration, 0x68, 0xF4}}

func TestVoltage(t *testing.T) {
	// 3.7 V = 925 * 4 mV, shifted left 3
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{
		{Addr: DefaultAddr, W: []byte{regBusVoltage}, R: []byte{0, 0}},
		calibrate,
		{Addr: DefaultAddr, W: []byte{regBusVoltage}, R: []byte{0x1C, 0xE8}},
		calibrate,
		{Addr: DefaultAddr, W: []byte{regBusVoltage}, R: []byte{0x1C, 0xE8}},
	}}

	m := Open(bus, DefaultAddr)
	if m == nil {
		t.Fatal("Open returned nil")
	}

	if v := m.Voltage(); math.Abs(v-3.7) > 1e-9 {
		t.Errorf("Voltage = %v, want 3.7", v)
	}
	if p := m.BatteryPercent(); p != 58 {
		t.Errorf("BatteryPercent = %d, want 58", p)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("bus: %v", err)
	}
}

func TestNilMonitor(t *testing.T) {
	var m *Monitor
	if m.Voltage() != cellFull || m.BatteryPercent() != 100 {
		t.Error("nil monitor does not report a full battery")
	}
	if !m.OnExternalPower() || m.IsLowPower() {
		t.Error("nil monitor reports battery power")
	}
}

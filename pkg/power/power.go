package power

import (
	"log"

	"periph.io/x/conn/v3/i2c"
)

const (
	DefaultAddr    = 0x43
	regBusVoltage  = 0x02
	regCurrent     = 0x04
	regCalibration = 0x05
	calValue       = 26868
	currentLSB     = 0.1524
	busVoltageLSB  = 0.004
	cellEmpty      = 3.0
	cellFull       = 4.2
	lowPowerLevel  = 10
)

// Monitor reads the battery pack through an INA219. A nil *Monitor is valid
// and reports a full battery on external power.
type Monitor struct {
	dev i2c.Dev
}

// Open probes the INA219 at addr. When nothing answers it logs and returns
// nil, and battery monitoring is disabled.
func Open(bus i2c.Bus, addr uint16) *Monitor {
	dev := i2c.Dev{Bus: bus, Addr: addr}

	testRead := make([]byte, 2)
	if err := dev.Tx([]byte{regBusVoltage}, testRead); err != nil {
		log.Println("No INA219 detected - battery monitoring disabled")
		return nil
	}

	return &Monitor{dev: dev}
}

func (m *Monitor) readRegister(reg byte) int {
	write := []byte{byte(regCalibration), byte(calValue >> 8), byte(calValue & 0xFF)}
	m.dev.Write(write)

	read := make([]byte, 2)
	m.dev.Tx([]byte{reg}, read)

	value := (int(read[0]) << 8) | int(read[1])
	if value > 32767 {
		value -= 65536
	}
	return value
}

// Voltage returns the bus voltage in volts
func (m *Monitor) Voltage() float64 {
	if m == nil {
		return cellFull
	}
	value := m.readRegister(regBusVoltage)
	return float64(value>>3) * busVoltageLSB
}

// OnExternalPower returns true unless the pack is discharging
func (m *Monitor) OnExternalPower() bool {
	if m == nil {
		return true
	}
	current := float64(m.readRegister(regCurrent)) * currentLSB
	return current >= 0
}

// BatteryPercent maps the bus voltage onto 0-100
func (m *Monitor) BatteryPercent() int {
	percent := int((m.Voltage() - cellEmpty) / (cellFull - cellEmpty) * 100)
	return max(0, min(100, percent))
}

// IsLowPower returns true at or below 10% with no external power
func (m *Monitor) IsLowPower() bool {
	if m == nil {
		return false
	}
	return m.BatteryPercent() <= lowPowerLevel && !m.OnExternalPower()
}

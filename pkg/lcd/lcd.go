package lcd

import (
	"fmt"
	"strings"
	"time"

	"periph.io/x/conn/v3/i2c"
)

const (
	DefaultAddr = 0x27
	Width       = 16

	// PCF8574 backpack pins
	bitRS        = 0x01
	bitEnable    = 0x04
	bitBacklight = 0x08

	cmdClear       = 0x01
	cmdEntryMode   = 0x06
	cmdDisplayOn   = 0x0C
	cmdDisplayOff  = 0x08
	cmdFunctionSet = 0x28 // 4-bit, 2 lines, 5x8
	cmdLine1       = 0x80
	cmdLine2       = 0xC0
)

// Display is a 16x2 HD44780 character LCD behind a PCF8574 I2C backpack
type Display struct {
	dev       i2c.Dev
	backlight byte
}

// Open initialises the controller into 4-bit mode and clears it
func Open(bus i2c.Bus, addr uint16) (*Display, error) {
	d := &Display{dev: i2c.Dev{Bus: bus, Addr: addr}, backlight: bitBacklight}

	time.Sleep(50 * time.Millisecond)
	for _, n := range []byte{0x30, 0x30, 0x30, 0x20} {
		if err := d.pulse(n); err != nil {
			return nil, fmt.Errorf("failed to init LCD at %#x: %w", addr, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	for _, c := range []byte{cmdFunctionSet, cmdDisplayOn, cmdClear, cmdEntryMode} {
		if err := d.command(c); err != nil {
			return nil, fmt.Errorf("failed to init LCD at %#x: %w", addr, err)
		}
	}
	time.Sleep(2 * time.Millisecond)

	return d, nil
}

// Show writes two lines, each padded or cut to the display width
func (d *Display) Show(line1, line2 string) error {
	if err := d.on(); err != nil {
		return err
	}
	if err := d.writeLine(cmdLine1, line1); err != nil {
		return err
	}
	return d.writeLine(cmdLine2, line2)
}

func (d *Display) Clear() error {
	if err := d.command(cmdClear); err != nil {
		return fmt.Errorf("failed to clear LCD: %w", err)
	}
	time.Sleep(2 * time.Millisecond)
	return nil
}

// Off blanks the display and turns the backlight off
func (d *Display) Off() error {
	d.backlight = 0
	if err := d.command(cmdDisplayOff); err != nil {
		return fmt.Errorf("failed to turn LCD off: %w", err)
	}
	return nil
}

func (d *Display) on() error {
	if d.backlight != 0 {
		return nil
	}
	d.backlight = bitBacklight
	if err := d.command(cmdDisplayOn); err != nil {
		return fmt.Errorf("failed to turn LCD on: %w", err)
	}
	return nil
}

func (d *Display) writeLine(addr byte, s string) error {
	if err := d.command(addr); err != nil {
		return fmt.Errorf("failed to write LCD: %w", err)
	}
	for _, c := range []byte(fit(s)) {
		if err := d.send(c, bitRS); err != nil {
			return fmt.Errorf("failed to write LCD: %w", err)
		}
	}
	return nil
}

func (d *Display) command(c byte) error {
	return d.send(c, 0)
}

// send writes one byte as two nibbles, high first
func (d *Display) send(b, mode byte) error {
	if err := d.pulse(b&0xF0 | mode); err != nil {
		return err
	}
	return d.pulse(b<<4&0xF0 | mode)
}

// pulse latches one nibble (already in the upper four bits) with the
// enable line
func (d *Display) pulse(v byte) error {
	v |= d.backlight
	if _, err := d.dev.Write([]byte{v | bitEnable}); err != nil {
		return err
	}
	_, err := d.dev.Write([]byte{v})
	return err
}

func fit(s string) string {
	if len(s) > Width {
		return s[:Width]
	}
	return s + strings.Repeat(" ", Width-len(s))
}

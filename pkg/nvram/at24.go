package nvram

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

const (
	at24Size      = 4096 // AT24C32
	at24PageSize  = 32
	at24WriteTime = 5 * time.Millisecond
)

// AT24 is an AT24C32-class serial EEPROM on the I2C bus
type AT24 struct {
	dev  i2c.Dev
	size int
}

// OpenAT24 probes the part at addr and returns ErrNoDevice if nothing answers
func OpenAT24(bus i2c.Bus, addr uint16) (*AT24, error) {
	e := &AT24{dev: i2c.Dev{Bus: bus, Addr: addr}, size: at24Size}

	probe := make([]byte, 1)
	if err := e.dev.Tx([]byte{0, 0}, probe); err != nil {
		return nil, fmt.Errorf("%w at %#x: %v", ErrNoDevice, addr, err)
	}
	return e, nil
}

func (e *AT24) ReadBlob(offset, n int) ([]byte, error) {
	if err := checkRange(offset, n, e.size); err != nil {
		return nil, err
	}

	out := make([]byte, n)
	for done := 0; done < n; {
		chunk := min(at24PageSize, n-done)
		addr := offset + done
		if err := e.dev.Tx([]byte{byte(addr >> 8), byte(addr)}, out[done:done+chunk]); err != nil {
			return nil, fmt.Errorf("failed to read EEPROM at %d: %w", addr, err)
		}
		done += chunk
	}
	return out, nil
}

// WriteBlob writes page by page; a page write never crosses a page boundary
// and each one is followed by the part's write-cycle time.
func (e *AT24) WriteBlob(offset int, data []byte) error {
	if err := checkRange(offset, len(data), e.size); err != nil {
		return err
	}

	for done := 0; done < len(data); {
		addr := offset + done
		chunk := min(at24PageSize-addr%at24PageSize, len(data)-done)

		buf := make([]byte, 0, 2+chunk)
		buf = append(buf, byte(addr>>8), byte(addr))
		buf = append(buf, data[done:done+chunk]...)
		if err := e.dev.Tx(buf, nil); err != nil {
			return fmt.Errorf("failed to write EEPROM at %d: %w", addr, err)
		}

		time.Sleep(at24WriteTime)
		done += chunk
	}
	return nil
}

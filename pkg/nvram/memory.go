package nvram

// Memory is a RAM-backed device. Fresh regions read as 0xFF, like an erased
// EEPROM.
type Memory struct {
	data []byte
}

func NewMemory(size int) *Memory {
	m := &Memory{data: make([]byte, size)}
	for i := range m.data {
		m.data[i] = 0xFF
	}
	return m
}

func (m *Memory) ReadBlob(offset, n int) ([]byte, error) {
	if err := checkRange(offset, n, len(m.data)); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, m.data[offset:offset+n])
	return out, nil
}

func (m *Memory) WriteBlob(offset int, data []byte) error {
	if err := checkRange(offset, len(data), len(m.data)); err != nil {
		return err
	}
	copy(m.data[offset:], data)
	return nil
}

// Bytes returns a copy of the whole region
func (m *Memory) Bytes() []byte {
	return append([]byte{}, m.data...)
}

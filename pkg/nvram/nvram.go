// Package nvram provides the raw, fixed-size byte regions the configuration
// store is persisted to. Devices know nothing about the layout they hold.
package nvram

// Device is a fixed-size non-volatile byte region. Both calls are synchronous
// and a write is never interleaved with another write.
type Device interface {
	ReadBlob(offset, n int) ([]byte, error)
	WriteBlob(offset int, data []byte) error
}

func checkRange(offset, n, size int) error {
	if offset < 0 || n < 0 || offset+n > size {
		return ErrOutOfRange
	}
	return nil
}

//go:build linux || darwin

package hostmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapMemory is a Memory backed by a real anonymous mmap(2) region
// instead of a Go slice, so benchmarks exercise the copy engines
// against host-page-backed memory the same way the emulator's real
// guest address space would be backed.
type MmapMemory struct {
	Memory
}

// NewMmap allocates size bytes via mmap(MAP_PRIVATE|MAP_ANONYMOUS).
// size is rounded up by the kernel to a whole number of pages.
func NewMmap(size int) (*MmapMemory, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("hostmem: mmap %d bytes: %w", size, err)
	}
	return &MmapMemory{Memory: Memory{buf: b}}, nil
}

// Close unmaps the region. Using the Memory afterward is undefined
// behavior.
func (m *MmapMemory) Close() error {
	if m.buf == nil {
		return nil
	}
	err := unix.Munmap(m.buf)
	m.buf = nil
	return err
}

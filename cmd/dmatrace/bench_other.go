//go:build !linux && !darwin

package main

import (
	"fmt"

	"github.com/oisee/dmatrace/pkg/hostmem"
)

func newMmapBackedMemory(size int) (*hostmem.Memory, func() error, error) {
	return nil, nil, fmt.Errorf("bench: mmap-backed memory is not supported on this platform")
}

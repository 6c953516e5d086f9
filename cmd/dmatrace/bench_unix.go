//go:build linux || darwin

package main

import "github.com/oisee/dmatrace/pkg/hostmem"

func newMmapBackedMemory(size int) (*hostmem.Memory, func() error, error) {
	m, err := hostmem.NewMmap(size)
	if err != nil {
		return nil, nil, err
	}
	return &m.Memory, m.Close, nil
}

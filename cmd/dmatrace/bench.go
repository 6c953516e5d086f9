package main

import (
	"fmt"
	"time"

	"github.com/oisee/dmatrace/pkg/hostmem"
	"github.com/oisee/dmatrace/pkg/memcopy"
)

func runBench(iterations, count int, useMmap bool) error {
	size := count*2 + 4096
	var mem *hostmem.Memory
	var closeFn func() error

	if useMmap {
		m, closer, err := newMmapBackedMemory(size)
		if err != nil {
			return err
		}
		mem, closeFn = m, closer
	} else {
		mem = hostmem.New(size)
	}
	if closeFn != nil {
		defer closeFn()
	}

	for i := range mem.Bytes() {
		mem.Bytes()[i] = byte(i)
	}

	src := uint64(0)
	dst := uint64(count + 8) // disjoint, keeps the benchmark on the non-overlap path

	start := time.Now()
	for i := 0; i < iterations; i++ {
		memcopy.Copy(mem, dst, src, uint64(count))
	}
	elapsed := time.Since(start)

	totalBytes := int64(iterations) * int64(count)
	backing := "slice"
	if useMmap {
		backing = "mmap"
	}
	fmt.Printf("backing=%s iterations=%d count=%d elapsed=%s throughput=%.1f MB/s\n",
		backing, iterations, count, elapsed, float64(totalBytes)/elapsed.Seconds()/1e6)
	return nil
}

// Command dmatrace is a debug/demo shell around the DMA memcpy
// tracing core: it encodes descriptors, runs copies under each mode,
// and prints the resulting trace/mops streams for inspection.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/oisee/dmatrace/pkg/desc"
	"github.com/oisee/dmatrace/pkg/dma"
	"github.com/oisee/dmatrace/pkg/hostmem"
	"github.com/oisee/dmatrace/pkg/mops"
	"github.com/oisee/dmatrace/pkg/trace"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dmatrace",
		Short: "DMA memcpy tracing core — encode descriptors and run traced copies",
	}

	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newCopyCmd())
	rootCmd.AddCommand(newBenchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <dst> <src> <count>",
		Short: "Print the descriptor for a (dst, src, count) triple",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, src, count, err := parseTriple(args)
			if err != nil {
				return err
			}
			d := desc.Encode(dst, src, count)
			fmt.Printf("descriptor: 0x%016X\n", uint64(d))
			fmt.Printf("  %s\n", d.String())
			fmt.Printf("  words_written: %d\n", d.WordsWritten())
			return nil
		},
	}
}

func newCopyCmd() *cobra.Command {
	var mode string
	var memSize int

	cmd := &cobra.Command{
		Use:   "copy <dst> <src> <count>",
		Short: "Run a copy in the given mode against a seeded in-memory buffer and dump the result",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, src, count, err := parseTriple(args)
			if err != nil {
				return err
			}

			mem := hostmem.New(memSize)
			for i := range mem.Bytes() {
				mem.Bytes()[i] = byte(i*37 + 11)
			}

			c := &dma.Copier{Mem: mem}
			switch mode {
			case "fast":
				c.Mode = dma.ModeFast
			case "trace":
				c.Mode = dma.ModeTrace
				c.TraceBuf = trace.NewBuffer(64)
				c.Governor = trace.NewGovernor(func(cur int) (int, error) { return cur * 2, nil })
			case "mops":
				c.Mode = dma.ModeMops
				c.OpBuf = mops.NewBuffer(64)
			default:
				return fmt.Errorf("unknown mode %q (want fast, trace, or mops)", mode)
			}

			n, err := c.Memcpy(dst, src, count)
			if err != nil {
				return err
			}

			fmt.Printf("mode=%s entries_written=%d\n", mode, n)
			switch mode {
			case "trace":
				for i, w := range c.TraceBuf.Words() {
					fmt.Printf("  [%d] 0x%016X\n", i, w)
				}
			case "mops":
				for i, op := range c.OpBuf.Ops() {
					fmt.Printf("  [%d] addr=0x%08X kind=0x%X count=%d\n", i, op.Addr(), op.Kind(), op.Count())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "trace", "copier mode: fast, trace, or mops")
	cmd.Flags().IntVar(&memSize, "mem-size", 1<<20, "size of the backing memory region in bytes")
	return cmd
}

func newBenchCmd() *cobra.Command {
	var iterations int
	var count int
	var useMmap bool

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure fast-copy throughput against a Go-slice or mmap-backed region",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(iterations, count, useMmap)
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", 100000, "number of copies to perform")
	cmd.Flags().IntVar(&count, "count", 256, "byte count per copy")
	cmd.Flags().BoolVar(&useMmap, "mmap", false, "back the region with an anonymous mmap instead of a Go slice")
	return cmd
}

func parseTriple(args []string) (dst, src, count uint64, err error) {
	dst, err = strconv.ParseUint(args[0], 0, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid dst %q: %w", args[0], err)
	}
	src, err = strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid src %q: %w", args[1], err)
	}
	count, err = strconv.ParseUint(args[2], 0, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid count %q: %w", args[2], err)
	}
	return dst, src, count, nil
}

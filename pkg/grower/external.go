// Package grower provides one concrete implementation of
// trace.GrowFunc: an external process that decides how far to grow the
// trace region. The allocator is modeled as a long-lived subprocess
// addressed over stdin/stdout with a small binary header, so the
// governor can call out to it as an ordinary function value supplied
// at construction rather than reaching for global state.
package grower

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// External manages a long-lived child process that makes grow
// decisions for a trace.Governor. The protocol is deliberately small:
// the caller writes the current capacity (in words) as a little-endian
// uint32, and the process replies with the new capacity as a
// little-endian uint32.
type External struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	mu     sync.Mutex // serialize grow requests
}

// NewExternal starts path as a child process and wires up its stdin/stdout.
func NewExternal(path string, args ...string) (*External, error) {
	cmd := exec.Command(path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("grower: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("grower: stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, fmt.Errorf("grower: start %s: %w", path, err)
	}

	return &External{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
	}, nil
}

// Grow implements trace.GrowFunc by round-tripping currentCapWords to
// the child process and returning its reply.
func (e *External) Grow(currentCapWords int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := binary.Write(e.stdin, binary.LittleEndian, uint32(currentCapWords)); err != nil {
		return 0, fmt.Errorf("grower: write request: %w", err)
	}

	var newCap uint32
	if err := binary.Read(e.stdout, binary.LittleEndian, &newCap); err != nil {
		return 0, fmt.Errorf("grower: read reply: %w", err)
	}
	return int(newCap), nil
}

// Close closes the child's stdin and waits for the child to exit,
// releasing its pipes. It does not kill the child.
func (e *External) Close() error {
	e.stdin.Close()
	return e.cmd.Wait()
}

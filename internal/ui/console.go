package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Console provides synchronized console output so progress lines from the
// dispatcher never interleave mid-line.
type Console struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewConsole creates a console writing to stdout.
func NewConsole() *Console {
	return &Console{writer: os.Stdout}
}

// NewConsoleWithWriter creates a console with a custom writer (for testing)
func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{writer: w}
}

// Print writes a message to the console with synchronization
func (c *Console) Print(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.writer, msg)
}

// Printf writes a formatted message to the console with synchronization
func (c *Console) Printf(format string, args ...interface{}) {
	c.Print(fmt.Sprintf(format, args...))
}

// Println writes a message with newline to the console with synchronization
func (c *Console) Println(msg string) {
	c.Print(msg + "\n")
}

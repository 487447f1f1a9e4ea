package operations

import (
	"fmt"
	"io"
)

// ConsoleProgress prints the per-file progress lines.
type ConsoleProgress struct {
	out   io.Writer
	total int
	done  int
}

// NewConsoleProgress creates a progress printer for total files.
func NewConsoleProgress(out io.Writer, total int) *ConsoleProgress {
	return &ConsoleProgress{out: out, total: total}
}

// Next announces the next file.
func (p *ConsoleProgress) Next(name string) {
	p.done++
	fmt.Fprintf(p.out, "Processing file %d of %d: %s\n", p.done, p.total, name)
}

// Failed reports a file that could not be analyzed.
func (p *ConsoleProgress) Failed(name string, err error) {
	fmt.Fprintf(p.out, "  Error processing %s: %v\n", name, err)
}

// Done returns how many files have been announced.
func (p *ConsoleProgress) Done() int {
	return p.done
}

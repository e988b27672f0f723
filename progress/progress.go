// Package progress prints pipeline progress to the terminal. The plain
// Printer coalesces bursts of fractional updates with bep/debounce so a
// fast inference loop doesn't flood stdout with one line per window.
package progress

import (
	"fmt"
	"time"

	"github.com/bep/debounce"
)

// Printer prints "Processing N of M" style lines, debounced so closely
// spaced calls collapse into the trailing one.
type Printer struct {
	total    int
	debounce func(func())
}

// NewPrinter returns a Printer that reports progress against total items,
// debouncing bursts of updates within the given interval.
func NewPrinter(total int, interval time.Duration) *Printer {
	return &Printer{total: total, debounce: debounce.New(interval)}
}

// Report schedules a progress line for the given completed-item count.
func (p *Printer) Report(done int) {
	p.debounce(func() {
		fmt.Printf("Processing %v of %v\n", done, p.total)
	})
}

// Fraction adapts Report to the inference.ProgressFunc signature, which
// reports completion as a fraction in [0, 1].
func (p *Printer) Fraction(frac float64) {
	p.Report(int(frac * float64(p.total)))
}

package progress

import (
	"testing"
	"time"
)

func TestPrinterReportAndFractionDoNotPanic(t *testing.T) {
	p := NewPrinter(10, time.Millisecond)
	p.Report(0)
	p.Report(5)
	p.Fraction(0.5)
	p.Fraction(1.0)
}

func TestPrinterWithZeroTotalDoesNotPanic(t *testing.T) {
	p := NewPrinter(0, time.Millisecond)
	p.Fraction(0.5)
}

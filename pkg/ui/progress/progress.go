// Package progress reports long running install steps on the terminal.
package progress

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Reporter receives progress from the install pipeline
type Reporter interface {
	// Step announces a pipeline step
	Step(msg string)
	// StartBar opens a bar of total units; a total of zero opens nothing
	StartBar(title string, total int)
	// Increment advances the bar by one, labelling the unit just done
	Increment(label string)
	// StopBar closes the bar
	StopBar()
	// Spin shows msg while a long task runs
	Spin(msg string) Spinner
}

// Spinner is a running indicator
type Spinner interface {
	Success(msg string)
	Fail(msg string)
}

// Terminal reports with pterm
type Terminal struct {
	w   io.Writer
	bar *pterm.ProgressbarPrinter
	// animate is false when w is not a terminal, bars and spinners are
	// then replaced by plain lines
	animate bool
}

// NewTerminal creates a Terminal writing to w, animating only when w is a tty
func NewTerminal(w io.Writer) *Terminal {
	animate := false
	if f, ok := w.(*os.File); ok {
		animate = isatty.IsTerminal(f.Fd())
	}
	return &Terminal{w: w, animate: animate}
}

func (t *Terminal) Step(msg string) {
	pterm.Info.WithWriter(t.w).Println(msg)
}

func (t *Terminal) StartBar(title string, total int) {
	if total <= 0 {
		return
	}
	if !t.animate {
		pterm.Info.WithWriter(t.w).Printfln("%s (%d)", title, total)
		return
	}
	bar, err := pterm.DefaultProgressbar.
		WithTitle(title).
		WithTotal(total).
		WithWriter(t.w).
		WithRemoveWhenDone(false).
		Start()
	if err != nil {
		pterm.Info.WithWriter(t.w).Println(title)
		return
	}
	t.bar = bar
}

func (t *Terminal) Increment(label string) {
	if t.bar == nil {
		if label != "" {
			pterm.Debug.WithWriter(t.w).Println(label)
		}
		return
	}
	if label != "" {
		t.bar.UpdateTitle(label)
	}
	t.bar.Increment()
}

func (t *Terminal) StopBar() {
	if t.bar == nil {
		return
	}
	_, _ = t.bar.Stop()
	t.bar = nil
}

func (t *Terminal) Spin(msg string) Spinner {
	if !t.animate {
		pterm.Info.WithWriter(t.w).Println(msg)
		return lineSpinner{w: t.w}
	}
	s, err := pterm.DefaultSpinner.WithWriter(t.w).Start(msg)
	if err != nil {
		return lineSpinner{w: t.w}
	}
	return ptermSpinner{s}
}

type ptermSpinner struct{ s *pterm.SpinnerPrinter }

func (p ptermSpinner) Success(msg string) { p.s.Success(msg) }
func (p ptermSpinner) Fail(msg string)    { p.s.Fail(msg) }

type lineSpinner struct{ w io.Writer }

func (l lineSpinner) Success(msg string) { pterm.Success.WithWriter(l.w).Println(msg) }
func (l lineSpinner) Fail(msg string)    { pterm.Error.WithWriter(l.w).Println(msg) }

// Nop discards all progress
type Nop struct{}

func (Nop) Step(string)          {}
func (Nop) StartBar(string, int) {}
func (Nop) Increment(string)     {}
func (Nop) StopBar()             {}
func (Nop) Spin(string) Spinner  { return nopSpinner{} }

type nopSpinner struct{}

func (nopSpinner) Success(string) {}
func (nopSpinner) Fail(string)    {}

var (
	_ Reporter = (*Terminal)(nil)
	_ Reporter = Nop{}
)

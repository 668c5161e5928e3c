package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/Zachkp/gifty-speed/counter"
)

// terminal prints counter frames. On an interactive terminal every frame
// overwrites the previous one; otherwise only the settled value is printed.
type terminal struct {
	w           io.Writer
	interactive bool
	paint       *color.Color
	last        string
}

func newTerminal(w io.Writer) *terminal {
	interactive := false
	if f, ok := w.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	paint := color.New(color.FgHiRed, color.Bold)
	if !interactive {
		paint.DisableColor()
	}
	return &terminal{w: w, interactive: interactive, paint: paint}
}

func (t *terminal) frame(text string) {
	t.last = text
	if t.interactive {
		fmt.Fprintf(t.w, "\r\033[K%s", t.paint.Sprint(text))
	}
}

func (t *terminal) finish() {
	if t.interactive {
		fmt.Fprintln(t.w)
		return
	}
	fmt.Fprintln(t.w, t.paint.Sprint(t.last))
}

func runCount(ctx context.Context, t *terminal, end float64, opts ...counter.Option) error {
	err := counter.Animate(ctx, end, t.frame, opts...)
	if err != nil {
		if t.interactive {
			fmt.Fprintln(t.w)
		}
		return err
	}
	t.finish()
	return nil
}

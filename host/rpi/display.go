package rpi

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"plumbot/core"
	"plumbot/sim"
)

// TextDisplay renders the character panel on a terminal. The screen is
// reprinted whenever its contents change.
type TextDisplay struct {
	mu     sync.Mutex
	screen *sim.Screen
	out    io.Writer
	last   string
}

func NewTextDisplay(out io.Writer) *TextDisplay {
	return &TextDisplay{screen: sim.NewScreen(), out: out}
}

func (d *TextDisplay) Init(addr uint8) error {
	if err := d.screen.Init(addr); err != nil {
		return err
	}
	return d.render()
}

func (d *TextDisplay) Clear() error {
	if err := d.screen.Clear(); err != nil {
		return err
	}
	return d.render()
}

func (d *TextDisplay) ShowString(col, row int, s string) error {
	if err := d.screen.ShowString(col, row, s); err != nil {
		return err
	}
	return d.render()
}

func (d *TextDisplay) render() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	text := d.screen.String()
	if text == d.last {
		return nil
	}
	d.last = text

	var sb strings.Builder
	sb.WriteString("+----------------+\n")
	for row := 0; row < core.DisplayRows; row++ {
		fmt.Fprintf(&sb, "|%-16s|\n", d.screen.Row(row))
	}
	sb.WriteString("+----------------+\n")
	_, err := io.WriteString(d.out, sb.String())
	return err
}

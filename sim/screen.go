package sim

import (
	"strings"
	"sync"

	"plumbot/core"
)

// Screen is an in-memory character display with the panel's 16x8 grid.
// It implements core.DisplayDriver.
type Screen struct {
	mu     sync.Mutex
	grid   [core.DisplayRows][core.DisplayColumns]byte
	addr   uint8
	inited bool
	writes int
}

func NewScreen() *Screen {
	s := &Screen{}
	s.clear()
	return s
}

func (s *Screen) Init(addr uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addr = addr
	s.inited = true
	s.clear()
	return nil
}

func (s *Screen) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
	return nil
}

// ShowString writes s at (col,row); characters past the last column and
// rows outside the grid are dropped, as on the panel.
func (s *Screen) ShowString(col, row int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if row < 0 || row >= core.DisplayRows {
		return nil
	}
	for i := 0; i < len(text); i++ {
		c := col + i
		if c < 0 {
			continue
		}
		if c >= core.DisplayColumns {
			break
		}
		s.grid[row][c] = text[i]
	}
	return nil
}

// Address returns the I2C address passed to Init, 0 before Init.
func (s *Screen) Address() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Initialized reports whether Init has been called.
func (s *Screen) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inited
}

// Writes counts ShowString calls.
func (s *Screen) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Row returns one row with trailing blanks trimmed.
func (s *Screen) Row(row int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row < 0 || row >= core.DisplayRows {
		return ""
	}
	return strings.TrimRight(string(s.grid[row][:]), " ")
}

// String renders the non-empty top rows, one per line.
func (s *Screen) String() string {
	rows := make([]string, core.DisplayRows)
	last := -1
	for r := range rows {
		rows[r] = s.Row(r)
		if rows[r] != "" {
			last = r
		}
	}
	return strings.Join(rows[:last+1], "\n")
}

func (s *Screen) clear() {
	for r := range s.grid {
		for c := range s.grid[r] {
			s.grid[r][c] = ' '
		}
	}
}

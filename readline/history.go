package readline

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/emirpasic/gods/v2/lists/arraylist"
)

type History struct {
	Enabled bool

	lines    *arraylist.List[string]
	limit    int
	pos      int
	filename string
}

// DefaultHistoryPath is ~/.seqmap/history.
func DefaultHistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".seqmap", "history"), nil
}

// NewHistory loads up to limit lines from path. An empty path keeps the
// history in memory only.
func NewHistory(path string, limit int) (*History, error) {
	h := &History{
		Enabled: true,
		lines:   arraylist.New[string](),
		limit:   max(limit, 1),
	}

	if path == "" {
		return h, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o600)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); len(line) > 0 {
			h.add(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	h.Compact()
	h.pos = h.Size()

	// set after loading so the lines just read aren't written back
	h.filename = path
	return h, nil
}

func (h *History) add(s string) bool {
	if latest, ok := h.lines.Get(h.Size() - 1); ok && latest == s {
		return false
	}
	h.lines.Add(s)
	return true
}

// Add records s unless it repeats the latest line and moves the cursor to
// the end.
func (h *History) Add(s string) {
	if h.add(s) {
		h.Compact()
		_ = h.Save()
	}
	// always set position to the end
	h.pos = h.Size()
}

func (h *History) Compact() {
	if s := h.lines.Size(); s > h.limit {
		for range s - h.limit {
			h.lines.Remove(0)
		}
	}
}

func (h *History) Clear() {
	h.lines.Clear()
	h.pos = 0
}

func (h *History) Prev() (line string) {
	if h.pos > 0 {
		h.pos -= 1
	}
	// return first line if at the beginning
	line, _ = h.lines.Get(h.pos)
	return line
}

func (h *History) Next() (line string) {
	if h.pos < h.lines.Size() {
		h.pos += 1
		line, _ = h.lines.Get(h.pos)
	}
	// return empty string if at the end
	return line
}

func (h *History) Pos() int {
	return h.pos
}

func (h *History) Size() int {
	return h.lines.Size()
}

func (h *History) Save() error {
	if !h.Enabled || h.filename == "" {
		return nil
	}

	f, err := os.CreateTemp(filepath.Dir(h.filename), "")
	if err != nil {
		return err
	}

	func() {
		defer f.Close()

		w := bufio.NewWriter(f)
		defer w.Flush()

		h.lines.Each(func(i int, line string) {
			fmt.Fprintln(w, line)
		})
	}()

	return os.Rename(f.Name(), h.filename)
}

package readline

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/v2/lists/arraylist"
	"github.com/mattn/go-runewidth"
)

// Buffer is the line being edited. Every edit redraws the prompt and the
// line, then puts the cursor back at Pos.
type Buffer struct {
	Pos    int
	Buf    *arraylist.List[rune]
	Prompt *Prompt

	out io.Writer
}

func NewBuffer(prompt *Prompt, out io.Writer) *Buffer {
	return &Buffer{
		Buf:    arraylist.New[rune](),
		Prompt: prompt,
		out:    out,
	}
}

func (b *Buffer) IsEmpty() bool {
	return b.Buf.Empty()
}

func (b *Buffer) String() string {
	return string(b.Buf.Values())
}

// DisplaySize is the width of the line in terminal cells.
func (b *Buffer) DisplaySize() int {
	return b.widthBetween(0, b.Buf.Size())
}

func (b *Buffer) widthBetween(from, to int) int {
	sum := 0
	for i := from; i < to; i++ {
		if r, ok := b.Buf.Get(i); ok {
			sum += runewidth.RuneWidth(r)
		}
	}
	return sum
}

func (b *Buffer) Add(r rune) {
	b.Buf.Insert(b.Pos, r)
	b.Pos++
	b.redraw()
}

// Remove deletes the rune before the cursor.
func (b *Buffer) Remove() {
	if b.Pos > 0 {
		b.Pos--
		b.Buf.Remove(b.Pos)
		b.redraw()
	}
}

// Delete deletes the rune under the cursor.
func (b *Buffer) Delete() {
	if b.Pos < b.Buf.Size() {
		b.Buf.Remove(b.Pos)
		b.redraw()
	}
}

func (b *Buffer) MoveLeft() {
	if b.Pos > 0 {
		b.Pos--
		b.redraw()
	}
}

func (b *Buffer) MoveRight() {
	if b.Pos < b.Buf.Size() {
		b.Pos++
		b.redraw()
	}
}

func (b *Buffer) MoveToStart() {
	b.Pos = 0
	b.redraw()
}

func (b *Buffer) MoveToEnd() {
	b.Pos = b.Buf.Size()
	b.redraw()
}

func (b *Buffer) isSpace(i int) bool {
	r, _ := b.Buf.Get(i)
	return r == ' '
}

func (b *Buffer) MoveLeftWord() {
	for b.Pos > 0 && b.isSpace(b.Pos-1) {
		b.Pos--
	}
	for b.Pos > 0 && !b.isSpace(b.Pos-1) {
		b.Pos--
	}
	b.redraw()
}

func (b *Buffer) MoveRightWord() {
	for b.Pos < b.Buf.Size() && b.isSpace(b.Pos) {
		b.Pos++
	}
	for b.Pos < b.Buf.Size() && !b.isSpace(b.Pos) {
		b.Pos++
	}
	b.redraw()
}

// DeleteBefore deletes from the start of the line to the cursor.
func (b *Buffer) DeleteBefore() {
	for range b.Pos {
		b.Buf.Remove(0)
	}
	b.Pos = 0
	b.redraw()
}

// DeleteRemaining deletes from the cursor to the end of the line.
func (b *Buffer) DeleteRemaining() {
	for b.Buf.Size() > b.Pos {
		b.Buf.Remove(b.Pos)
	}
	b.redraw()
}

// DeleteWord deletes the word before the cursor.
func (b *Buffer) DeleteWord() {
	end := b.Pos
	for b.Pos > 0 && b.isSpace(b.Pos-1) {
		b.Pos--
	}
	for b.Pos > 0 && !b.isSpace(b.Pos-1) {
		b.Pos--
	}
	for range end - b.Pos {
		b.Buf.Remove(b.Pos)
	}
	b.redraw()
}

// Replace swaps the whole line, leaving the cursor at its end.
func (b *Buffer) Replace(r []rune) {
	b.Buf.Clear()
	b.Buf.Add(r...)
	b.Pos = len(r)
	b.redraw()
}

func (b *Buffer) ClearScreen() {
	fmt.Fprint(b.out, ClearScreen+CursorReset)
	b.redraw()
}

func (b *Buffer) redraw() {
	var sb strings.Builder
	sb.WriteString(CursorBOL)
	sb.WriteString(b.Prompt.prompt())
	sb.WriteString(b.String())
	sb.WriteString(ClearToEOL)
	sb.WriteString(CursorLeftN(b.widthBetween(b.Pos, b.Buf.Size())))
	fmt.Fprint(b.out, sb.String())
}

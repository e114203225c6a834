package readline

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

type Prompt struct {
	Prompt      string
	Placeholder string
}

func (p *Prompt) prompt() string {
	return p.Prompt
}

func (p *Prompt) placeholder() string {
	return p.Placeholder
}

type Terminal struct {
	in      *os.File
	fd      int
	outchan chan rune
	state   *term.State
}

type Instance struct {
	Prompt   *Prompt
	Terminal *Terminal
	History  *History
}

// New starts reading stdin in raw mode. history may be nil, in which case
// lines are kept in memory only.
func New(prompt Prompt, history *History) (*Instance, error) {
	t, err := NewTerminal(os.Stdin)
	if err != nil {
		return nil, err
	}

	if history == nil {
		history, _ = NewHistory("", 100)
	}

	return &Instance{
		Prompt:   &prompt,
		Terminal: t,
		History:  history,
	}, nil
}

func (i *Instance) Readline() (string, error) {
	if err := i.Terminal.makeRaw(); err != nil {
		return "", err
	}
	defer func() {
		//nolint:errcheck
		i.Terminal.restore()
	}()

	fmt.Print(i.Prompt.prompt())

	buf := NewBuffer(i.Prompt, os.Stdout)

	var esc bool
	var escex bool
	var metaDel bool

	var currentLineBuf []rune

	for {
		if buf.IsEmpty() {
			ph := i.Prompt.placeholder()
			fmt.Print(ColorGrey + ph + CursorLeftN(len(ph)) + ColorDefault)
		}

		r, err := i.Terminal.Read()

		if buf.IsEmpty() {
			fmt.Print(ClearToEOL)
		}

		if err != nil {
			return "", io.EOF
		}

		if escex {
			escex = false

			switch r {
			case KeyUp:
				i.historyPrev(buf, &currentLineBuf)
			case KeyDown:
				i.historyNext(buf, &currentLineBuf)
			case KeyLeft:
				buf.MoveLeft()
			case KeyRight:
				buf.MoveRight()
			case KeyDel:
				buf.Delete()
				metaDel = true
			case MetaStart:
				buf.MoveToStart()
			case MetaEnd:
				buf.MoveToEnd()
			}
			continue
		} else if esc {
			esc = false

			switch r {
			case 'b':
				buf.MoveLeftWord()
			case 'f':
				buf.MoveRightWord()
			case CharBackspace:
				buf.DeleteWord()
			case CharEscapeEx:
				escex = true
			}
			continue
		}

		switch r {
		case CharNull:
			continue
		case CharEsc:
			esc = true
		case CharInterrupt:
			fmt.Print("\r\n")
			return buf.String(), ErrInterrupt
		case CharPrev:
			i.historyPrev(buf, &currentLineBuf)
		case CharNext:
			i.historyNext(buf, &currentLineBuf)
		case CharLineStart:
			buf.MoveToStart()
		case CharLineEnd:
			buf.MoveToEnd()
		case CharBackward:
			buf.MoveLeft()
		case CharForward:
			buf.MoveRight()
		case CharBackspace, CharCtrlH:
			buf.Remove()
		case CharTab:
			buf.Add(' ')
		case CharDelete:
			if !buf.IsEmpty() {
				buf.Delete()
			} else {
				fmt.Print("\r\n")
				return "", io.EOF
			}
		case CharKill:
			buf.DeleteRemaining()
		case CharCtrlU:
			buf.DeleteBefore()
		case CharCtrlL:
			buf.ClearScreen()
		case CharCtrlW:
			buf.DeleteWord()
		case CharCtrlZ:
			if err := i.Terminal.suspend(); err != nil {
				return "", err
			}
			buf.redraw()
		case CharEnter, CharCtrlJ:
			output := buf.String()
			if output != "" {
				i.History.Add(output)
			}
			buf.MoveToEnd()
			fmt.Print("\r\n")

			return output, nil
		default:
			if metaDel {
				metaDel = false
				continue
			}
			if r >= CharSpace {
				buf.Add(r)
			}
		}
	}
}

func (i *Instance) historyPrev(buf *Buffer, currentLineBuf *[]rune) {
	if i.History.Pos() > 0 {
		if i.History.Pos() == i.History.Size() {
			*currentLineBuf = []rune(buf.String())
		}
		buf.Replace([]rune(i.History.Prev()))
	}
}

func (i *Instance) historyNext(buf *Buffer, currentLineBuf *[]rune) {
	if i.History.Pos() < i.History.Size() {
		buf.Replace([]rune(i.History.Next()))
		if i.History.Pos() == i.History.Size() {
			buf.Replace(*currentLineBuf)
		}
	}
}

func NewTerminal(in *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("readline: %s is not a terminal", in.Name())
	}

	t := &Terminal{
		in:      in,
		fd:      fd,
		outchan: make(chan rune),
	}

	go t.ioloop()

	return t, nil
}

func (t *Terminal) makeRaw() error {
	if t.state != nil {
		return nil
	}

	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return err
	}
	t.state = state
	return nil
}

func (t *Terminal) restore() error {
	if t.state == nil {
		return nil
	}

	err := term.Restore(t.fd, t.state)
	t.state = nil
	return err
}

func (t *Terminal) ioloop() {
	buf := bufio.NewReader(t.in)

	for {
		r, _, err := buf.ReadRune()
		if err != nil {
			close(t.outchan)
			break
		}
		t.outchan <- r
	}
}

func (t *Terminal) Read() (rune, error) {
	r, ok := <-t.outchan
	if !ok {
		return 0, io.EOF
	}

	return r, nil
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/jmorganca/seqmap/logutil"
	"github.com/jmorganca/seqmap/seqmap"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

const nilReply = "(nil)"

type command struct {
	usage   string
	help    string
	minArgs int
	maxArgs int // -1 for no limit
	// rawTail passes the line after the first argument through verbatim as
	// the second argument.
	rawTail bool
	run     func(s *Session, args []string) error
}

// Session interprets map commands against one working map.
type Session struct {
	m   *seqmap.Map[string, string]
	out io.Writer

	newKey func() string
}

func NewSession(out io.Writer, capacity int) *Session {
	return &Session{
		m:      seqmap.WithCapacity[string, string](capacity),
		out:    out,
		newKey: uuid.NewString,
	}
}

// commands is kept in registration order so help lists them that way.
var commands = seqmap.New[string, command]()

func init() {
	for _, c := range []struct {
		name string
		command
	}{
		{"set", command{"set <key> <value>", "Set a value, keeping the key's position", 2, -1, true, (*Session).set}},
		{"setnx", command{"setnx <key> <value>", "Set a value only if the key is absent", 2, -1, true, (*Session).setnx}},
		{"get", command{"get <key>", "Show the value for a key", 1, 1, false, (*Session).get}},
		{"del", command{"del <key>", "Remove a key", 1, 1, false, (*Session).del}},
		{"has", command{"has <key>", "Report whether a key is present", 1, 1, false, (*Session).has}},
		{"pos", command{"pos <key>", "Show the position of a key", 1, 1, false, (*Session).pos}},
		{"at", command{"at <position>", "Show the entry at a position", 1, 1, false, (*Session).at}},
		{"len", command{"len", "Show the number of entries", 0, 0, false, (*Session).length}},
		{"keys", command{"keys", "List keys in order", 0, 0, false, (*Session).keys}},
		{"values", command{"values", "List values in order", 0, 0, false, (*Session).values}},
		{"list", command{"list", "List entries with their positions", 0, 0, false, (*Session).list}},
		{"clear", command{"clear", "Remove every entry", 0, 0, false, (*Session).clear}},
		{"fill", command{"fill <n>", "Insert n entries with random keys", 1, 1, false, (*Session).fill}},
		{"help", command{"help", "Show this help", 0, 0, false, (*Session).help}},
	} {
		if err := commands.TryInsert(c.name, c.command); err != nil {
			panic(err)
		}
	}
}

// Exec runs one command line. Blank lines and lines starting with # are
// ignored. quit is true for exit and quit.
func (s *Session) Exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false, nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "exit", "quit":
		return true, nil
	}

	c, ok := commands.Get(name)
	if !ok {
		return false, fmt.Errorf("%w %q, try help", ErrUnknownCommand, name)
	}

	if len(args) < c.minArgs || (c.maxArgs >= 0 && len(args) > c.maxArgs) {
		return false, fmt.Errorf("%w: %s", ErrUsage, c.usage)
	}

	if c.rawTail {
		args = []string{args[0], tailAfter(line, 2)}
	}

	logutil.Trace("exec", "cmd", name, "args", args)
	if err := c.run(s, args); err != nil {
		slog.Debug("command failed", "cmd", name, "error", err)
		return false, err
	}
	return false, nil
}

// tailAfter returns line without its first n fields and the whitespace that
// follows them.
func tailAfter(line string, n int) string {
	rest := line
	for range n {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		i := strings.IndexFunc(rest, unicode.IsSpace)
		if i < 0 {
			return ""
		}
		rest = rest[i:]
	}
	return strings.TrimLeftFunc(rest, unicode.IsSpace)
}

func (s *Session) reply(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Session) set(args []string) error {
	prev, replaced := s.m.Insert(args[0], args[1])
	if !replaced {
		s.reply("(new)")
		return nil
	}
	s.reply(prev)
	return nil
}

func (s *Session) setnx(args []string) error {
	v := s.m.GetOrInsertWith(args[0], func() string {
		return args[1]
	})
	s.reply(*v)
	return nil
}

func (s *Session) get(args []string) error {
	if v, ok := s.m.Get(args[0]); ok {
		s.reply(v)
	} else {
		s.reply(nilReply)
	}
	return nil
}

func (s *Session) del(args []string) error {
	if v, ok := s.m.Remove(args[0]); ok {
		s.reply(v)
	} else {
		s.reply(nilReply)
	}
	return nil
}

func (s *Session) has(args []string) error {
	s.reply(s.m.ContainsKey(args[0]))
	return nil
}

func (s *Session) pos(args []string) error {
	if p, ok := s.m.PositionOf(args[0]); ok {
		s.reply(p)
	} else {
		s.reply(nilReply)
	}
	return nil
}

func (s *Session) at(args []string) error {
	p, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: at <position>: %q is not a position", ErrUsage, args[0])
	}

	if k, v, ok := s.m.At(p); ok {
		s.reply(k, v)
	} else {
		s.reply(nilReply)
	}
	return nil
}

func (s *Session) length([]string) error {
	s.reply(s.m.Len())
	return nil
}

func (s *Session) keys([]string) error {
	for k := range s.m.Keys() {
		s.reply(k)
	}
	return nil
}

func (s *Session) values([]string) error {
	for v := range s.m.Values() {
		s.reply(v)
	}
	return nil
}

func (s *Session) list([]string) error {
	var data [][]string
	for k, v := range s.m.All() {
		data = append(data, []string{strconv.Itoa(len(data)), k, v})
	}
	renderTable(s.out, []string{"POS", "KEY", "VALUE"}, data)
	return nil
}

func (s *Session) clear([]string) error {
	s.m.Clear()
	s.reply("OK")
	return nil
}

func (s *Session) fill(args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return fmt.Errorf("%w: fill <n>: %q is not a count", ErrUsage, args[0])
	}

	start := s.m.Len()
	for i := range n {
		s.m.Insert(s.newKey(), strconv.Itoa(start+i))
	}
	s.reply("inserted", n)
	return nil
}

func (s *Session) help([]string) error {
	var data [][]string
	for _, c := range commands.All() {
		data = append(data, []string{c.usage, c.help})
	}
	data = append(data, []string{"exit, quit", "Leave the session"})
	renderTable(s.out, []string{"COMMAND", "DESCRIPTION"}, data)
	return nil
}

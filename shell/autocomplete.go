package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/movegen"
)

// ShellCompleter completes command names, options, and for play the legal
// moves of the current position.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new":      {Args: []string{"standard"}},
	"autoplay": {Options: []string{"-threads", "-seeds"}, Args: []string{"stop"}},
	"help":     {Args: []string{"load", "best", "solve", "autoplay", "bench", "script"}},
}

var commandNames = []string{
	"help", "new", "load", "show", "moves", "play", "pass", "best", "solve",
	"threads", "autoplay", "bench", "script", "exit",
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	startingNew := strings.HasSuffix(text, " ")

	if len(fields) == 0 || (len(fields) == 1 && !startingNew) {
		prefix := ""
		if len(fields) == 1 {
			prefix = fields[0]
		}
		return suffixes(commandNames, prefix), len(prefix)
	}

	prefix := ""
	if !startingNew {
		prefix = fields[len(fields)-1]
	}
	var candidates []string
	if fields[0] == "play" {
		candidates = lo.Map(movegen.Moves(c.sc.pos), func(mv int, _ int) string {
			return board.IndexToCoord(mv)
		})
	} else if md, ok := commandMetadata[fields[0]]; ok {
		if strings.HasPrefix(prefix, "-") {
			candidates = md.Options
		} else {
			candidates = md.Args
		}
	}
	return suffixes(candidates, prefix), len(prefix)
}

// suffixes returns what is left to type of each candidate starting with
// prefix, followed by a space.
func suffixes(candidates []string, prefix string) [][]rune {
	var out [][]rune
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, []rune(c[len(prefix):]+" "))
		}
	}
	return out
}

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/negascout"
)

var (
	errNoData            = errors.New("no data in command")
	errWrongOptionSyntax = errors.New("wrong format for option")
	errQuit              = errors.New("sending quit signal")
	errUnknownOption     = errors.New("unknown option")
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config  *config.Config
	solver  *negascout.Solver
	profile termenv.Profile

	pos board.Position
	// plies counts moves and passes since the last new or load.
	plies int

	autoplayCancel context.CancelFunc
	autoplayDone   <-chan struct{}
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController sets up a readline prompt and a solver configured from
// cfg, starting from the initial position.
func NewShellController(cfg *config.Config) *ShellController {
	sc := newController(cfg, nil, termenv.ColorProfile())
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mothello>\033[0m ",
		HistoryFile:     "/tmp/othello_readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

func newController(cfg *config.Config, out io.Writer, profile termenv.Profile) *ShellController {
	s := negascout.NewSolver()
	s.Configure(cfg)
	return &ShellController{
		out:     out,
		config:  cfg,
		solver:  s,
		profile: profile,
		pos:     board.Initial(),
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a command line into the command, its positional
// arguments, and -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		key, ok := optionKey(f)
		if !ok {
			cmd.args = append(cmd.args, f)
			continue
		}
		if !lo.Contains(commandMetadata[cmd.cmd].Options, f) {
			return nil, fmt.Errorf("%w for %s: %s", errUnknownOption, cmd.cmd, f)
		}
		if i == len(fields)-1 {
			return nil, errWrongOptionSyntax
		}
		cmd.options[key] = append(cmd.options[key], fields[i+1])
		i++
	}
	return cmd, nil
}

// optionKey returns the key of a -key field. Board expressions start with
// a dash too, so only a dash followed by lowercase letters is an option.
func optionKey(f string) (string, bool) {
	if len(f) < 2 || f[0] != '-' {
		return "", false
	}
	key := f[1:]
	for _, r := range key {
		if r < 'a' || r > 'z' {
			return "", false
		}
	}
	return key, true
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		if sig != nil {
			sig <- syscall.SIGINT
		}
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "load":
		return sc.load(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "moves":
		return sc.moves(cmd)
	case "play":
		return sc.play(cmd)
	case "pass":
		return sc.pass(cmd)
	case "best":
		return sc.best(cmd)
	case "solve":
		return sc.solve(cmd)
	case "threads":
		return sc.threads(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "bench":
		return sc.bench(cmd)
	case "script":
		return sc.script(cmd)
	default:
		log.Debug().Str("cmd", cmd.cmd).Msg("unknown-command")
		return nil, errors.New("command not recognized: " + cmd.cmd)
	}
}

// Execute runs a single command line, as given on the command line instead
// of at the prompt.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if errors.Is(err, errQuit) {
		return
	}
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.standardModeSwitch(line, sig)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msg("exiting-readline-loop")
}

// Wait blocks until a running autoplay has finished.
func (sc *ShellController) Wait() {
	if sc.autoplayDone != nil {
		<-sc.autoplayDone
	}
}

// Cleanup stops a running autoplay and waits for its logs to be written.
func (sc *ShellController) Cleanup() {
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
		<-sc.autoplayDone
		sc.autoplayCancel = nil
	}
}

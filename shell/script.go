package shell

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
)

// scriptCommands are the shell commands a script can call, each as
// othello_<name>(args). They return the command's output, or a string
// starting with "ERROR: ".
var scriptCommands = []string{
	"new", "load", "show", "moves", "play", "pass", "best", "solve",
	"threads", "bench",
}

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("othello_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand wraps a shell command as a Lua function taking its arguments
// as one string.
func luaCommand(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		line := strings.TrimSpace(name + " " + L.OptString(1, ""))
		sc := getShell(L)
		r, err := sc.standardModeSwitch(line, nil)
		if err != nil {
			log.Err(err).Str("cmd", name).Msg("error-executing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

// Print writes its argument to the shell's output.
func Print(L *lua.LState) int {
	getShell(L).showMessage(L.ToString(1))
	return 0
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("othello_shell", lsc)
	L.SetGlobal("othello_print", L.NewFunction(Print))
	for _, name := range scriptCommands {
		L.SetGlobal("othello_"+name, L.NewFunction(luaCommand(name)))
	}

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Str("file", filepath).Msg("script-failed")
		return nil, err
	}
	return msg("script " + filepath + " done"), nil
}

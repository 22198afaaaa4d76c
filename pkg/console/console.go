// Package console provides an interactive shell issuing commands to the
// slider for debugging.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/slider.go/pkg/framework"
	"github.com/robotalks/slider.go/pkg/link"
)

// DefaultTimeout bounds the wait for each response.
const DefaultTimeout = time.Second

const prompt = "slider> "

// Console is a framework.Runnable running an ishell shell.
type Console struct {
	Shell   *ishell.Shell // created by Run
	Timeout time.Duration
	// Handler answers lines. When nil, lines are posted to the loop found
	// in the context given to Run.
	Handler link.Handler

	ctx context.Context
}

type lineBuilder func(args []string) (string, error)

var commands = []struct {
	name, help string
	build      lineBuilder
}{
	{"ping", "check the link", verbOnly("PING")},
	{"status", "show state, position and homed flag", verbOnly("STATUS")},
	{"getpos", "show position", verbOnly("GETPOS")},
	{"move", "move <steps> [speed]", buildMove},
	{"stop", "stop motion or clear a fault", verbOnly("STOP")},
	{"home", "search the endstop and zero the position", verbOnly("HOME")},
	{"send", "send <line>: send a raw command line", buildRaw},
}

// New creates a Console.
func New() *Console {
	return &Console{Timeout: DefaultTimeout, ctx: context.Background()}
}

func (c *Console) newShell() *ishell.Shell {
	shell := ishell.New()
	shell.SetPrompt(prompt)
	for _, cmd := range commands {
		build := cmd.build
		shell.AddCmd(&ishell.Cmd{
			Name: cmd.name,
			Help: cmd.help,
			Func: func(sc *ishell.Context) { c.do(sc, build) },
		})
	}
	return shell
}

// Name implements framework.Named.
func (c *Console) Name() string {
	return "console"
}

// Run implements framework.Runnable.
func (c *Console) Run(ctx context.Context) error {
	if c.Handler == nil {
		c.Handler = link.LoopHandler(framework.LoopCtlFrom(ctx), c.Name())
	}
	c.ctx = ctx
	c.Shell = c.newShell()
	c.Shell.Println("slider console, type help for commands")
	return framework.RunWithContextCloser(ctx, shellCloser{c.Shell}, func() error {
		c.Shell.Run()
		return nil
	})
}

// Exec builds the command line for a console command, sends it and
// returns the response line.
func (c *Console) Exec(name string, args ...string) (string, error) {
	for _, cmd := range commands {
		if cmd.name == name {
			return c.send(cmd.build, args)
		}
	}
	return "", fmt.Errorf("unknown command %q", name)
}

func (c *Console) send(build lineBuilder, args []string) (string, error) {
	line, err := build(args)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(c.ctx, c.Timeout)
	defer cancel()
	resp, err := c.Handler.HandleLine(ctx, line)
	if err == context.DeadlineExceeded {
		return "", fmt.Errorf("%s: timeout", line)
	}
	return resp, err
}

func (c *Console) do(sc *ishell.Context, build lineBuilder) {
	resp, err := c.send(build, sc.Args)
	if err != nil {
		sc.Err(err)
		return
	}
	sc.Println(resp)
}

func verbOnly(verb string) lineBuilder {
	return func(args []string) (string, error) {
		if len(args) > 0 {
			return "", fmt.Errorf("%s takes no arguments", strings.ToLower(verb))
		}
		return verb, nil
	}
}

func buildMove(args []string) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", fmt.Errorf("usage: move <steps> [speed]")
	}
	for _, arg := range args {
		if _, err := strconv.ParseInt(arg, 10, 32); err != nil {
			return "", fmt.Errorf("invalid number %q", arg)
		}
	}
	line := "MOVE STEPS=" + args[0]
	if len(args) > 1 {
		line += " SPEED=" + args[1]
	}
	return line, nil
}

func buildRaw(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: send <line>")
	}
	return strings.Join(args, " "), nil
}

type shellCloser struct {
	shell *ishell.Shell
}

func (s shellCloser) Close() error {
	s.shell.Close()
	return nil
}

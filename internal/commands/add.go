package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "tasklist add <name...> <age>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(env.Err, "error: name and age required")
		return exitcode.UserError
	}

	// Last arg is the age, the rest form the name
	name := strings.Join(args[:len(args)-1], " ")
	age := args[len(args)-1]

	ctl := controller.New(env.Service, env.Log)
	ctl.SetName(name)
	ctl.SetAge(age)
	if err := ctl.Submit(ctx); err != nil {
		return report(env.Err, ctl, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(env.Out, "ok")
	}
	return exitcode.Success
}

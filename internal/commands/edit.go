package commands

import (
	"context"
	"flag"
	"fmt"

	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct {
	name    string
	age     string
	nameSet bool
	ageSet  bool
}

// SetName sets the new name (for testing).
func (c *EditCmd) SetName(name string) {
	c.name, c.nameSet = name, true
}

// SetAge sets the new age (for testing).
func (c *EditCmd) SetAge(age string) {
	c.age, c.ageSet = age, true
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"update"} }
func (c *EditCmd) Synopsis() string   { return "Change a task's name or age" }
func (c *EditCmd) Usage() string      { return "tasklist edit [--name <name>] [--age <age>] <ref>" }
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = EditCmd{}
	fs.Func("name", "", func(s string) error {
		c.SetName(s)
		return nil
	})
	fs.Func("age", "", func(s string) error {
		c.SetAge(s)
		return nil
	})
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(env.Err, "error: %v\n", err)
		return exitcode.UserError
	}

	if !c.nameSet && !c.ageSet {
		fmt.Fprintln(env.Err, "error: nothing to change (use --name or --age)")
		return exitcode.UserError
	}

	ctl := controller.New(env.Service, env.Log)
	if err := ctl.FetchAll(ctx); err != nil {
		return report(env.Err, ctl, err)
	}

	task, err := ResolveTask(ctl.Snapshot().Tasks, ref)
	if err != nil {
		return report(env.Err, ctl, err)
	}

	ctl.BeginEdit(task)
	if c.nameSet {
		ctl.SetName(c.name)
	}
	if c.ageSet {
		ctl.SetAge(c.age)
	}
	if err := ctl.Submit(ctx); err != nil {
		return report(env.Err, ctl, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(env.Out, "ok")
	}
	return exitcode.Success
}

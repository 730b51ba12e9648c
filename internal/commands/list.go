package commands

import (
	"context"
	"flag"
	"fmt"

	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tasklist` (no args) and `tasklist list`.
type ListCmd struct{}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "tasklist list" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.Err, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ctl := controller.New(env.Service, env.Log)
	if err := ctl.FetchAll(ctx); err != nil {
		return report(env.Err, ctl, err)
	}

	tasks := ctl.Snapshot().Tasks
	if len(tasks) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "no tasks found")
		}
		return exitcode.Success
	}
	for i, task := range tasks {
		output.FormatTask(env.Out, i+1, task)
	}
	return exitcode.Success
}

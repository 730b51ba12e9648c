package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
}

// SetYes skips the confirmation prompt (for testing).
func (c *RmCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "tasklist rm [--yes] <ref>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(env.Err, "error: %v\n", err)
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

	confirm := controller.Answer(true)
	if !c.yes {
		confirm = &promptConfirmer{
			in:    bufio.NewReader(env.In),
			out:   env.Err,
			label: output.TaskLabel(task),
		}
	}

	removed, err := ctl.Remove(ctx, task.ID, confirm)
	if err != nil {
		return report(env.Err, ctl, err)
	}
	if !removed {
		fmt.Fprintln(env.Err, "error: delete cancelled")
		return exitcode.UserError
	}

	if !env.Config.Quiet {
		fmt.Fprintln(env.Out, "ok")
	}
	return exitcode.Success
}

// promptConfirmer asks on a terminal and blocks until a line is read.
// Only "y" or "yes" (any case) confirms; EOF declines.
type promptConfirmer struct {
	in    *bufio.Reader
	out   io.Writer
	label string
}

func (p *promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s\n  %s\n[y/N] ", prompt, p.label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

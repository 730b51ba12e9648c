package commands

import (
	"context"
	"flag"
	"fmt"

	"tasklist/internal/controller"
	"tasklist/internal/exitcode"
	"tasklist/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd starts the interactive task form.
type UICmd struct{}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return nil }
func (c *UICmd) Synopsis() string   { return "Open the interactive task form" }
func (c *UICmd) Usage() string      { return "tasklist ui" }
func (c *UICmd) NeedsBackend() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, env *Env, args []string) int {
	ctl := controller.New(env.Service, env.Log)
	if err := tui.Run(ctx, ctl); err != nil {
		if ctx.Err() != nil {
			return exitcode.Success
		}
		fmt.Fprintf(env.Err, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

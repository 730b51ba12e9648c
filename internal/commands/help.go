package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"tasklist/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tasklist help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string) int {
	fmt.Fprintln(env.Out, "Usage:")
	fmt.Fprintln(env.Out, "  tasklist                 List all tasks")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(env.Out, "  %s\n", cmd.Usage())
	}

	fmt.Fprintln(env.Out)
	fmt.Fprintln(env.Out, "Commands:")
	for _, cmd := range DefaultRegistry.All() {
		names := append([]string{cmd.Name()}, cmd.Aliases()...)
		fmt.Fprintf(env.Out, "  %-16s %s\n", strings.Join(names, ", "), cmd.Synopsis())
	}

	fmt.Fprint(env.Out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
<ref> is a list number or a task id.

Common flags:
  --config <dir>    Override config directory
  --backend <url>   Backend base URL (default: $TASKLIST_BACKEND_URL)
  --quiet           Suppress informational output
  --debug           Print debug logs to stderr
`

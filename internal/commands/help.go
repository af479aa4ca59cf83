package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. The command list is built from
// the registry so every registered command shows up.
type HelpCmd struct {
	// Registry defaults to DefaultRegistry.
	Registry *Registry
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskboard help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	reg := c.Registry
	if reg == nil {
		reg = DefaultRegistry
	}
	fmt.Fprint(out, HelpText(reg))
	return exitcode.Success
}

// HelpText renders usage for every command in reg.
func HelpText(reg *Registry) string {
	public, protected := reg.ByAuth()

	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  taskboard                 Show the dashboard (requires login)\n")
	b.WriteString("  taskboard <command> [common flags] [args]\n")

	writeSection(&b, "Account commands:", public)
	writeSection(&b, "Task commands (require login):", protected)

	b.WriteString(commonFlagsHelp)
	return b.String()
}

func writeSection(b *strings.Builder, title string, cmds []Command) {
	fmt.Fprintf(b, "\n%s\n", title)
	for _, cmd := range cmds {
		fmt.Fprintf(b, "  %-10s %s\n", cmd.Name(), cmd.Synopsis())
		fmt.Fprintf(b, "             %s\n", cmd.Usage())
	}
}

const commonFlagsHelp = `
Common flags:
  --config <dir>   Override config directory
  --api-url <url>  Override the API base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`

package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/board"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/view"
)

const loadFailed = "Failed to load tasks"

func init() {
	Register(&TasksCmd{})
}

// TasksCmd implements the tasks command.
type TasksCmd struct {
	filter string
	search string
}

func (c *TasksCmd) Name() string      { return "tasks" }
func (c *TasksCmd) Aliases() []string { return []string{"board", "ls"} }
func (c *TasksCmd) Synopsis() string  { return "Show the task board" }
func (c *TasksCmd) Usage() string {
	return "taskboard tasks [--filter <ALL|OPEN|IN_PROGRESS|DONE>] [--search <text>]"
}
func (c *TasksCmd) NeedsAuth() bool { return true }

func (c *TasksCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
}

func (c *TasksCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	f, err := view.ParseFilter(c.filter)
	if err != nil {
		return userError(errOut, err)
	}

	b := board.New(env.Service, currentSession(env).UserID)
	if err := b.Load(ctx); err != nil {
		return backendError(env, errOut, loadFailed, err)
	}

	renderBoard(out, b.View(f, c.search))
	return exitcode.Success
}

// renderBoard prints the board page: header with the unfiltered count,
// then the three columns.
func renderBoard(out io.Writer, v view.Board) {
	s := output.NewStyles(out)
	output.FormatHeader(out, s, "Tasks", fmt.Sprintf("%d total tasks", v.Total))
	output.FormatBoard(out, s, v)
}

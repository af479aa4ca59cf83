package commands

import (
	"context"
	"errors"
	"flag"
	"io"

	"taskboard/internal/board"
	"taskboard/internal/exitcode"
	"taskboard/internal/view"
)

const deleteFailed = "Failed to delete task"

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	board bool
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskboard rm [--board] <id>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.board, "board", false, "")
	fs.BoolVar(&c.board, "b", false, "")
}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return userError(errOut, ErrTaskIDRequired)
	}
	if len(args) > 1 {
		return userError(errOut, errors.New("too many arguments"))
	}
	id, err := ParseTaskID(args[0])
	if err != nil {
		return userError(errOut, err)
	}

	if !c.board {
		if err := env.Service.DeleteTask(ctx, id); err != nil {
			return backendError(env, errOut, deleteFailed, err)
		}
		ok(env, out)
		return exitcode.Success
	}

	b := board.New(env.Service, currentSession(env).UserID)
	if err := b.Load(ctx); err != nil {
		return backendError(env, errOut, loadFailed, err)
	}
	if err := b.Delete(ctx, id); err != nil {
		return backendError(env, errOut, deleteFailed, err)
	}
	renderBoard(out, b.View(view.FilterAll, ""))
	return exitcode.Success
}

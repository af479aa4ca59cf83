package commands

import (
	"context"
	"errors"
	"flag"
	"io"

	"taskboard/internal/board"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/view"
)

const updateFailed = "Failed to update task"

func init() {
	Register(&StatusCmd{})
}

// StatusCmd implements the status command.
type StatusCmd struct {
	board bool
}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return []string{"mv"} }
func (c *StatusCmd) Synopsis() string  { return "Move a task to another status" }
func (c *StatusCmd) Usage() string {
	return "taskboard status [--board] <id> <OPEN|IN_PROGRESS|DONE>"
}
func (c *StatusCmd) NeedsAuth() bool { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.board, "board", false, "")
	fs.BoolVar(&c.board, "b", false, "")
}

func (c *StatusCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return userError(errOut, ErrTaskIDRequired)
	}
	id, err := ParseTaskID(args[0])
	if err != nil {
		return userError(errOut, err)
	}
	if len(args) < 2 {
		return userError(errOut, errors.New("status required"))
	}
	if len(args) > 2 {
		return userError(errOut, errors.New("too many arguments"))
	}
	status, err := service.ParseStatus(args[1])
	if err != nil {
		return userError(errOut, err)
	}

	if !c.board {
		if _, err := env.Service.UpdateTaskStatus(ctx, id, status); err != nil {
			return backendError(env, errOut, updateFailed, err)
		}
		ok(env, out)
		return exitcode.Success
	}

	b := board.New(env.Service, currentSession(env).UserID)
	if err := b.Load(ctx); err != nil {
		return backendError(env, errOut, loadFailed, err)
	}
	if _, err := b.ChangeStatus(ctx, id, status); err != nil {
		return backendError(env, errOut, updateFailed, err)
	}
	renderBoard(out, b.View(view.FilterAll, ""))
	return exitcode.Success
}

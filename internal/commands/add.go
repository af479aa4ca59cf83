package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

const createFailed = "Failed to create task"

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	priority    string
	status      string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskboard add [--description <text>] [--priority <HIGH|MEDIUM|LOW>] [--status <OPEN|IN_PROGRESS|DONE>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.priority, "priority", string(service.PriorityMedium), "")
	fs.StringVar(&c.priority, "p", string(service.PriorityMedium), "")
	fs.StringVar(&c.status, "status", string(service.StatusOpen), "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	priority, err := service.ParsePriority(c.priority)
	if err != nil {
		return userError(errOut, err)
	}
	status, err := service.ParseStatus(c.status)
	if err != nil {
		return userError(errOut, err)
	}

	task := service.NewTask{
		Title:       strings.Join(args, " "),
		Description: c.description,
		Priority:    priority,
		Status:      status,
		UserID:      currentSession(env).UserID,
	}
	if err := service.ValidateNewTask(task); err != nil {
		return userError(errOut, err)
	}

	created, err := env.Service.CreateTask(ctx, task)
	if err != nil {
		return backendError(env, errOut, createFailed, err)
	}

	if !env.Config.Quiet {
		output.FormatTaskCard(out, output.NewStyles(out), created)
	}
	return exitcode.Success
}

package commands_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/session"
	"taskboard/internal/testutil"
)

// newEnv builds an Env around svc. When userName is non-nil the store
// holds a session for user 1 with that name.
func newEnv(t *testing.T, svc service.Service, userName *string, quiet bool) *commands.Env {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{Dir: dir, Quiet: quiet}
	store := session.NewStore(filepath.Join(dir, config.SessionFile))
	if userName != nil {
		_, err := store.Login(testutil.IssueToken(1, *userName))
		require.NoError(t, err)
	}
	return &commands.Env{
		Config:  cfg,
		Service: svc,
		Session: store,
		Log:     logging.Discard(),
	}
}

func loggedIn(t *testing.T, svc service.Service) *commands.Env {
	name := "Ada"
	return newEnv(t, svc, &name, false)
}

// runCommand parses args with the command's flags and runs it.
func runCommand(t *testing.T, cmd commands.Command, env *commands.Env, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))

	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), env, fs.Args(), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, newEnv(t, nil, nil, false))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskboard 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, newEnv(t, nil, nil, false))

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	testutil.GoldenString(t, "help", stdout)
}

func TestDashboard(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", service.StatusOpen)
	svc.AddTask(1, "Write report", service.StatusInProgress)
	svc.AddTask(1, "File taxes", service.StatusDone)
	svc.AddTask(2, "Someone else's", service.StatusDone)

	stdout, stderr, code := runCommand(t, &commands.DashboardCmd{}, loggedIn(t, svc))

	require.Equal(t, exitcode.Success, code, stderr)
	assert.Contains(t, stdout, "Welcome back, Ada!")
	assert.Contains(t, stdout, "Total Tasks       3")
	assert.Contains(t, stdout, "Completed         1")
	assert.Contains(t, stdout, "Buy milk")
	assert.NotContains(t, stdout, "Someone else's")

	assert.ElementsMatch(t, []testutil.ListCall{
		{UserID: 1, Page: 0, Size: service.StatsPageSize},
		{UserID: 1, Page: 0, Size: service.RecentPageSize},
	}, svc.ListCalls)
}

func TestDashboard_Empty(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.DashboardCmd{}, loggedIn(t, testutil.NewFakeService()))

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, stdout, "Total Tasks       0")
	assert.Contains(t, stdout, "No tasks yet. Create your first task!")
}

func TestDashboard_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("connection refused")

	stdout, stderr, code := runCommand(t, &commands.DashboardCmd{}, loggedIn(t, svc))

	assert.Equal(t, exitcode.BackendError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: Failed to load dashboard\n", stderr)
}

func TestTasks_Board(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", service.StatusOpen)
	svc.AddTask(1, "Buy bread", service.StatusDone)
	svc.AddTask(1, "Write report", service.StatusInProgress)

	stdout, stderr, code := runCommand(t, &commands.TasksCmd{}, loggedIn(t, svc))

	require.Equal(t, exitcode.Success, code, stderr)
	assert.Contains(t, stdout, "3 total tasks")
	assert.Contains(t, stdout, "Open (1)")
	assert.Contains(t, stdout, "In Progress (1)")
	assert.Contains(t, stdout, "Completed (1)")
	require.Len(t, svc.ListCalls, 1)
	assert.Equal(t, service.BoardPageSize, svc.ListCalls[0].Size)
}

func TestTasks_FilterAndSearch(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", service.StatusOpen)
	svc.AddTask(1, "Buy bread", service.StatusDone)
	svc.AddTask(1, "Write report", service.StatusOpen)

	stdout, _, code := runCommand(t, &commands.TasksCmd{}, loggedIn(t, svc), "--filter", "open", "--search", "BUY")

	require.Equal(t, exitcode.Success, code)
	assert.Contains(t, stdout, "3 total tasks", "header counts the unfiltered list")
	assert.Contains(t, stdout, "Buy milk")
	assert.NotContains(t, stdout, "Buy bread")
	assert.NotContains(t, stdout, "Write report")
	assert.Contains(t, stdout, "No completed tasks")
}

func TestTasks_InvalidFilter(t *testing.T) {
	svc := testutil.NewFakeService()
	_, stderr, code := runCommand(t, &commands.TasksCmd{}, loggedIn(t, svc), "--filter", "later")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: invalid filter: later\n", stderr)
	assert.Empty(t, svc.ListCalls)
}

func TestTasks_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("boom")

	_, stderr, code := runCommand(t, &commands.TasksCmd{}, loggedIn(t, svc))

	assert.Equal(t, exitcode.BackendError, code)
	assert.Equal(t, "error: Failed to load tasks\n", stderr)
}

func TestAdd_Defaults(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, loggedIn(t, svc), "Buy", "milk")

	require.Equal(t, exitcode.Success, code, stderr)
	assert.Contains(t, stdout, "#1  Buy milk  [MEDIUM]")

	tasks := svc.AllTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, service.Task{
		ID:       1,
		Title:    "Buy milk",
		Status:   service.StatusOpen,
		Priority: service.PriorityMedium,
		UserID:   1,
	}, tasks[0])
}

func TestAdd_WithFlags(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.AddCmd{}, loggedIn(t, svc),
		"-d", "from the store", "--priority", "high", "--status", "in-progress", "Buy milk")

	require.Equal(t, exitcode.Success, code, stderr)
	task := svc.AllTasks()[0]
	assert.Equal(t, "from the store", task.Description)
	assert.Equal(t, service.PriorityHigh, task.Priority)
	assert.Equal(t, service.StatusInProgress, task.Status)
}

func TestAdd_Quiet(t *testing.T) {
	name := "Ada"
	svc := testutil.NewFakeService()

	stdout, _, code := runCommand(t, &commands.AddCmd{}, newEnv(t, svc, &name, true), "Buy milk")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
}

func TestAdd_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no title", nil, "error: title required\n"},
		{"blank title", []string{"  "}, "error: title required\n"},
		{"bad priority", []string{"--priority", "urgent", "x"}, "error: invalid priority: urgent\n"},
		{"bad status", []string{"--status", "later", "x"}, "error: invalid status: later\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			_, stderr, code := runCommand(t, &commands.AddCmd{}, loggedIn(t, svc), tt.args...)

			assert.Equal(t, exitcode.UserError, code)
			assert.Equal(t, tt.want, stderr)
			assert.Empty(t, svc.AllTasks(), "validation blocks the request")
		})
	}
}

func TestAdd_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = errors.New("boom")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, loggedIn(t, svc), "Buy milk")

	assert.Equal(t, exitcode.BackendError, code)
	assert.Equal(t, "error: Failed to create task\n", stderr)
}

func TestStatus(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "A", service.StatusOpen)
	target := svc.AddTask(1, "B", service.StatusOpen)

	stdout, stderr, code := runCommand(t, &commands.StatusCmd{}, loggedIn(t, svc), "#2", "done")

	require.Equal(t, exitcode.Success, code, stderr)
	assert.Equal(t, "ok\n", stdout)
	assert.Equal(t, []testutil.StatusCall{{ID: target.ID, Status: service.StatusDone}}, svc.StatusCalls)
	assert.Empty(t, svc.ListCalls, "plain status does not load the board")
}

func TestStatus_Board(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "A", service.StatusOpen)
	svc.AddTask(1, "B", service.StatusOpen)

	stdout, stderr, code := runCommand(t, &commands.StatusCmd{}, loggedIn(t, svc), "--board", "2", "IN_PROGRESS")

	require.Equal(t, exitcode.Success, code, stderr)
	assert.Len(t, svc.StatusCalls, 1)
	assert.Contains(t, stdout, "Open (1)")
	assert.Contains(t, stdout, "In Progress (1)")
	assert.Contains(t, stdout, "2 total tasks")
}

func TestStatus_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args", nil, "error: task id required\n"},
		{"no status", []string{"1"}, "error: status required\n"},
		{"bad id", []string{"abc", "done"}, "error: invalid task id: abc\n"},
		{"bad status", []string{"1", "later"}, "error: invalid status: later\n"},
		{"extra", []string{"1", "done", "now"}, "error: too many arguments\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			_, stderr, code := runCommand(t, &commands.StatusCmd{}, loggedIn(t, svc), tt.args...)

			assert.Equal(t, exitcode.UserError, code)
			assert.Equal(t, tt.want, stderr)
			assert.Empty(t, svc.StatusCalls)
		})
	}
}

func TestStatus_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.StatusCmd{}, loggedIn(t, svc), "99", "done")

	assert.Equal(t, exitcode.BackendError, code)
	assert.Equal(t, "error: Failed to update task\n", stderr)
}

func TestRm(t *testing.T) {
	svc := testutil.NewFakeService()
	keep := svc.AddTask(1, "Keep", service.StatusOpen)
	svc.AddTask(1, "Drop", service.StatusOpen)

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, loggedIn(t, svc), "2")

	require.Equal(t, exitcode.Success, code, stderr)
	assert.Equal(t, "ok\n", stdout)
	assert.Equal(t, []service.Task{keep}, svc.AllTasks())
}

func TestRm_Board(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Keep", service.StatusOpen)
	svc.AddTask(1, "Drop", service.StatusOpen)

	stdout, _, code := runCommand(t, &commands.RmCmd{}, loggedIn(t, svc), "-b", "2")

	require.Equal(t, exitcode.Success, code)
	assert.Contains(t, stdout, "1 total tasks")
	assert.Contains(t, stdout, "Keep")
	assert.NotContains(t, stdout, "Drop")
}

func TestRm_Errors(t *testing.T) {
	svc := testutil.NewFakeService()
	env := loggedIn(t, svc)

	_, stderr, code := runCommand(t, &commands.RmCmd{}, env)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task id required\n", stderr)

	_, stderr, code = runCommand(t, &commands.RmCmd{}, env, "0")
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: invalid task id: 0\n", stderr)

	_, stderr, code = runCommand(t, &commands.RmCmd{}, env, "7")
	assert.Equal(t, exitcode.BackendError, code)
	assert.Equal(t, "error: Failed to delete task\n", stderr)
}

func TestWhoami(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.WhoamiCmd{}, loggedIn(t, nil))
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Ada (user 1)\n", stdout)

	empty := ""
	stdout, _, _ = runCommand(t, &commands.WhoamiCmd{}, newEnv(t, nil, &empty, false))
	assert.Equal(t, "User (user 1)\n", stdout)
}

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"12", 12, false},
		{"#12", 12, false},
		{" 3 ", 3, false},
		{"", 0, true},
		{"#", 0, true},
		{"0", 0, true},
		{"-4", 0, true},
		{"a1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := commands.ParseTaskID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

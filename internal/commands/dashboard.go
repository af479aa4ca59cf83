package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"

	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

const dashboardFailed = "Failed to load dashboard"

func init() {
	Register(&DashboardCmd{})
}

// DashboardCmd implements the dashboard command.
type DashboardCmd struct{}

func (c *DashboardCmd) Name() string      { return "dashboard" }
func (c *DashboardCmd) Aliases() []string { return []string{"home"} }
func (c *DashboardCmd) Synopsis() string  { return "Show task counts and recent tasks" }
func (c *DashboardCmd) Usage() string     { return "taskboard dashboard [common flags]" }
func (c *DashboardCmd) NeedsAuth() bool   { return true }

func (c *DashboardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DashboardCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	sess := currentSession(env)

	// Stats and recent tasks are independent requests; wait for both.
	var (
		wg                sync.WaitGroup
		stats             service.Stats
		recent            service.Page
		statsErr, listErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		stats, statsErr = service.FetchStats(ctx, env.Service, sess.UserID)
	}()
	go func() {
		defer wg.Done()
		recent, listErr = env.Service.ListTasks(ctx, sess.UserID, 0, service.RecentPageSize)
	}()
	wg.Wait()

	if err := errors.Join(statsErr, listErr); err != nil {
		return backendError(env, errOut, dashboardFailed, err)
	}

	s := output.NewStyles(out)
	output.FormatHeader(out, s, "Dashboard", "Welcome back, "+sess.DisplayName()+"!")
	output.FormatStats(out, s, stats)
	fmt.Fprintln(out)
	output.FormatRecentTasks(out, s, recent.Content)
	return exitcode.Success
}

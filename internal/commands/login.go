package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

// PasswordEnv supplies the password when --password is not given.
const PasswordEnv = "TASKBOARD_PASSWORD"

const loginFailed = "Invalid email or password"

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in and store the session" }
func (c *LoginCmd) Usage() string {
	return "taskboard login --email <email> [--password <password>]"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	creds := service.Credentials{Email: c.email, Password: c.password}
	if creds.Password == "" {
		creds.Password = os.Getenv(PasswordEnv)
	}
	if err := service.ValidateCredentials(creds); err != nil {
		return userError(errOut, err)
	}

	token, err := env.Service.Login(ctx, creds)
	if err != nil {
		env.Log.WithError(err).Debug("login request failed")
		fmt.Fprintf(errOut, "error: %s\n", loginFailed)
		return exitcode.AuthError
	}

	sess, err := env.Session.Login(token)
	if err != nil {
		env.Log.WithError(err).Debug("login token rejected")
		fmt.Fprintf(errOut, "error: %s\n", loginFailed)
		return exitcode.AuthError
	}
	env.Log.WithField("user_id", sess.UserID).Debug("session stored")

	ok(env, out)
	return exitcode.Success
}

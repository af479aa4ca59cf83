package commands

import (
	"context"
	"flag"
	"io"
	"os"

	"taskboard/internal/backend/rest"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

const registerFailed = "Registration failed. Please try again."

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	name     string
	email    string
	password string
	confirm  string
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "taskboard register --name <name> --email <email> --password <password> --confirm <password>"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.confirm, "confirm", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	reg := service.Registration{
		Name:            c.name,
		Email:           c.email,
		Password:        c.password,
		ConfirmPassword: c.confirm,
	}
	if reg.Password == "" {
		reg.Password = os.Getenv(PasswordEnv)
		if reg.ConfirmPassword == "" {
			reg.ConfirmPassword = reg.Password
		}
	}
	if err := service.ValidateRegistration(reg); err != nil {
		return userError(errOut, err)
	}

	if err := env.Service.Register(ctx, reg); err != nil {
		msg := rest.ServerMessage(err)
		if msg == "" {
			msg = registerFailed
		}
		return backendError(env, errOut, msg, err)
	}

	ok(env, out)
	return exitcode.Success
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
)

const helpText = `Commands:
  signup     create an account
  login      log in and keep the token for this session
  logout     forget the token
  whoami     show the logged-in identity
  protected  call the protected route
  passwd     change the password
  help       show this help
  exit       quit`

func (a *App) prompt() string {
	if a.email != "" {
		return fmt.Sprintf("gophauth (%s) > ", a.email)
	}
	return "gophauth > "
}

// Run checks connectivity and runs the REPL until exit or end of input.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "gophauth CLI (type 'help' for commands)")

	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "warning: %v\n", err)
	}

	for {
		fmt.Fprint(a.out, a.prompt())

		line, err := a.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			fmt.Fprintln(a.out)
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if quit := a.dispatch(ctx, fields[0]); quit {
			return
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string) (quit bool) {
	var err error

	switch cmd {
	case "help":
		fmt.Fprintln(a.out, helpText)
	case "signup":
		err = a.Signup(ctx)
	case "login":
		err = a.Login(ctx)
	case "logout":
		a.Logout()
	case "whoami":
		err = a.WhoAmI(ctx)
	case "protected":
		err = a.Protected(ctx)
	case "passwd":
		err = a.ChangePassword(ctx)
	case "exit", "quit":
		return true
	default:
		fmt.Fprintf(a.out, "unknown command %q (type 'help')\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(a.out, "error: %s\n", describe(err))
	}
	return false
}

func describe(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

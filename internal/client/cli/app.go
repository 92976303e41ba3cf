package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

// API is the part of client.Client the REPL drives.
type API interface {
	Signup(ctx context.Context, email, password, confirm string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, token string) (*client.Principal, error)
	Protected(ctx context.Context, token string) (string, error)
	ChangePassword(ctx context.Context, token, current, newPassword, confirm string) error
	Ping(ctx context.Context) error
}

type App struct {
	api    API
	reader *bufio.Reader
	out    io.Writer
	token  string
	email  string
}

func NewApp(c *config.Config) *App {
	return newApp(client.New(c.ServerURL, c.RequestTimeout), os.Stdin, os.Stdout)
}

func newApp(api API, in io.Reader, out io.Writer) *App {
	return &App{api: api, reader: bufio.NewReader(in), out: out}
}

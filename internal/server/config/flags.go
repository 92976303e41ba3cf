package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":3000")
//	-g string   gRPC bind address (e.g. ":50051")
//	-b string   database driver: pgx | sqlite
//	-d string   database DSN
//	-s string   token signing key
//	-t int      token validity, minutes (0 = no expiry claim)
//	-k string   hash algorithm: bcrypt | argon2id
//	-w int      bcrypt cost
//	-strict     re-resolve the principal on every guarded call
//	-l string   log level
//
// Only the flags above are taken from args (see flagx.FilterArgs), so the
// -c/-config flag and foreign flags do not cause parse errors.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, "a", "g", "b", "d", "s", "t", "k", "w", "strict", "l")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDriver, "b", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing key")
	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token validity (in minutes, 0 = no expiry)")
	fs.StringVar(&config.HashAlgorithm, "k", config.HashAlgorithm, "password hash algorithm")
	fs.IntVar(&config.BcryptCost, "w", config.BcryptCost, "bcrypt cost")
	fs.BoolVar(&config.StrictTokenCheck, "strict", config.StrictTokenCheck, "look up the principal on every guarded call")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
		}
	})
	return nil
}

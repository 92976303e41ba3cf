// Package cli provides the interactive gophauth command-line client.
//
// The REPL supports signing up, logging in, showing the current identity,
// calling the protected route and changing the password. The bearer token
// lives only in memory for the lifetime of the process.
package cli

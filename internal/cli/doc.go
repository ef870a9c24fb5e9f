// Package cli provides the interactive teamboard command-line client.
//
// It wires configuration, the two local blob stores, and the auth service
// into a small REPL. On start the app restores a surviving session, so a
// user signed in earlier in the same OS session is not prompted again.
//
// Commands: signup, login, logout, update, whoami, help, exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

// Command ntru generates NTRUEncrypt keys and encrypts and decrypts messages.
//
// Usage:
//
//	ntru [global flags] <command> [flags]
//
// Commands:
//
//	params    List the standard parameter sets or print the selected one
//	keygen    Generate a private key and one or more public keys
//	pubgen    Generate an additional public key for a private key
//	encrypt   Encrypt a message with a public key
//	decrypt   Decrypt a ciphertext with a key pair
//	bench     Time key generation, encryption and decryption
//
// Global flags can be set through NTRU_* environment variables, see --help.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0"
var version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run is the actual entry point, returning an exit code. It takes the full argument
// list, program name included, so that it can be tested in isolation.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := newApp(stdin, stdout, stderr)
	if err := app.Run(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "ntru",
		Usage:     "NTRUEncrypt key generation, encryption and decryption",
		Version:   version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     newGlobalFlags(),
		Before: func(c *cli.Context) error {
			c.App.Metadata = map[string]interface{}{
				"logger": newLogger(stderr, c.Int(verbosityFlag), c.Bool(logJSONFlag)),
			}
			return nil
		},
		Commands: []*cli.Command{
			newParamsCommand(),
			newKeygenCommand(),
			newPubgenCommand(),
			newEncryptCommand(),
			newDecryptCommand(),
			newBenchCommand(),
		},
	}
}

// verbosityToLevel maps a verbosity in [0, 5] to a log level.
func verbosityToLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= 1:
		return slog.LevelError
	case verbosity == 2:
		return slog.LevelWarn
	case verbosity == 3:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

func newLogger(w io.Writer, verbosity int, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: verbosityToLevel(verbosity)}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func loggerFrom(c *cli.Context) *slog.Logger {
	if l, ok := c.App.Metadata["logger"].(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

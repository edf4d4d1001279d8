// Command pedidos is the Tilápia Supreme order client: login, catalog,
// order listing and filtering, and the order form, against the order API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/keilahoriye/tilapiasuprememobile/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cmd.NewCLI(os.Stdin, os.Stdout, os.Stderr).Execute(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}

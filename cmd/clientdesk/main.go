// Package main is the entry point for clientdesk.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clientdesk/clientdesk/cmd/clientdesk/commands"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli := commands.New()
	cli.SetArgs(args)
	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "clientdesk: %v\n", err)
		return 1
	}
	return 0
}

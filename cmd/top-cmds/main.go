package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/chazuruo/topcmds/internal/cli"
)

// Version is set at build time using ldflags
var Version = "dev"

// Commit is set at build time using ldflags
var Commit = "unknown"

// Date is set at build time using ldflags
var Date = "unknown"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := cli.NewRootCommand(cli.VersionInfo{Version: Version, Commit: Commit, Date: Date}, nil)
	code := cli.Execute(ctx, rootCmd, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/pthm/clarity/internal/cmd"
	"github.com/pthm/clarity/internal/version"
)

func main() {
	err := fang.Execute(context.Background(), cmd.RootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
	if err != nil {
		os.Exit(1)
	}
}

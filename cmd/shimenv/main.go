package main

import (
	"os"

	"github.com/hbjs97/shimenv/internal/cli"
	"github.com/hbjs97/shimenv/internal/logging"
)

func main() {
	logging.Setup(os.Getenv("SHIMENV_LOG"))

	// argv[0]이 shimenv가 아니면 shim 심링크로 호출된 것이다.
	if cli.IsShimInvocation(os.Args[0]) {
		os.Exit(int(cli.RunShim(os.Args)))
	}

	app, err := cli.NewApp()
	if err != nil {
		logging.Errorf("%v", err)
		os.Exit(int(cli.ExitGeneral))
	}
	cmd := app.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(int(cli.MapExitCode(err)))
	}
}

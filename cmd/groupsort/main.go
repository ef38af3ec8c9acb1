package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Serve    ServeCmd         `cmd:"" help:"Run the websocket play server"`
	Play     PlayCmd          `cmd:"" help:"Play a game in the terminal"`
	Check    CheckCmd         `cmd:"" help:"Validate dataset files"`
	Generate GenerateCmd      `cmd:"" help:"Generate a synthetic dataset"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("groupsort"),
		kong.Description("Hidden-group sorting puzzle: server, terminal client and dataset tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

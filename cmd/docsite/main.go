package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/cmd/docsite/commands"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("docsite"),
		kong.Description("Validate and export documentation site configuration"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	slog.Debug("Running command", logfields.Command(ctx.Command()), logfields.Path(cli.Config))
	err := ctx.Run(&commands.Global{Out: os.Stdout}, cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(commands.Classify(err))
}

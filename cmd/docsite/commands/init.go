package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/config"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force   bool   `help:"Overwrite existing configuration file"`
	FromGit string `name:"from-git" help:"Fill organizationName/projectName from the GitHub origin of this checkout" placeholder:"DIR"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	var opts config.InitOptions
	if i.FromGit != "" {
		d, err := config.InferDeployment(i.FromGit)
		switch {
		case errors.Is(err, config.ErrNotGitHub):
			slog.Warn("Origin is not on GitHub; keeping example deployment settings", logfields.Path(i.FromGit))
		case err != nil:
			return ferrors.GitError("infer deployment settings").WithCause(err).WithContext("path", i.FromGit).Build()
		default:
			opts.Deployment = &d
		}
	}
	if err := config.Init(root.Config, i.Force, opts); err != nil {
		return err
	}
	_, err := fmt.Fprintf(g.out(), "Wrote %s\n", root.Config)
	return err
}

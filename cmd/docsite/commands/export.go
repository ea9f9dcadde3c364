package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/config"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Output string `short:"o" help:"JSON file for the site builder ('-' for stdout)" default:"docsite.config.json"`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	site, err := root.LoadSite()
	if err != nil {
		return err
	}
	return writeExport(g, site, e.Output)
}

func writeExport(g *Global, site *config.Site, output string) error {
	data, err := site.MarshalIndent()
	if err != nil {
		return ferrors.ExportError("encode configuration").WithCause(err).Build()
	}
	data = append(data, '\n')
	if output == "-" {
		_, err = g.out().Write(data)
		return err
	}
	if err := config.WriteFileAtomic(output, data); err != nil {
		return ferrors.ExportError(fmt.Sprintf("write %s", output)).WithCause(err).WithContext("path", output).Build()
	}
	slog.Info("Exported configuration", logfields.Path(output), logfields.Fingerprint(site.Fingerprint()))
	return nil
}

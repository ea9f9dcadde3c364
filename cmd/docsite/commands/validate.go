package commands

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Quiet bool `short:"q" help:"Print only the fingerprint"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	site, err := root.LoadSite()
	if err != nil {
		return err
	}
	out := g.out()
	if v.Quiet {
		_, err = fmt.Fprintln(out, site.Fingerprint())
		return err
	}
	_, err = fmt.Fprint(out, Summary(site, time.Now()))
	return err
}

// Summary describes a Site in a few human-readable lines.
func Summary(site *config.Site, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", site.Title, site.Tagline)
	fmt.Fprintf(&b, "  url:       %s%s\n", site.URL, site.BaseURL)
	fmt.Fprintf(&b, "  locales:   %s (default %s)\n", strings.Join(site.I18n.Locales, ", "), site.I18n.DefaultLocale)
	names := make([]string, 0, len(site.Presets))
	for _, p := range site.Presets {
		names = append(names, p.Name)
	}
	if len(names) > 0 {
		fmt.Fprintf(&b, "  presets:   %s\n", strings.Join(names, ", "))
	}
	if len(site.Themes) > 0 {
		fmt.Fprintf(&b, "  themes:    %s\n", strings.Join(site.Themes, ", "))
	}
	fmt.Fprintf(&b, "  links:     onBrokenLinks=%s onBrokenMarkdownLinks=%s\n", site.OnBrokenLinks, site.OnBrokenMarkdownLinks)
	if c := site.ThemeConfig.Footer.RenderCopyright(now); c != "" {
		fmt.Fprintf(&b, "  footer:    %s\n", c)
	}
	fmt.Fprintf(&b, "  fingerprint: %s\n", site.Fingerprint())
	return b.String()
}

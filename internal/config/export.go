package config

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// The JSON form of a Site is the literal shape the site build tool reads:
// presets and plugins are [name, options] tuples, disabled sections are false,
// and navbar items carry their variant through type/docId/href/to.
// Decoding the output with Decode yields an equal Site.

// MarshalIndent renders s as indented JSON for the build tool.
func (s *Site) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func (p Preset) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Name, p.Options})
}

func (o PresetOptions) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"docs":    false,
		"blog":    false,
		"theme":   o.Theme,
		"sitemap": o.Sitemap,
	}
	if o.Docs != nil {
		out["docs"] = o.Docs
	}
	if o.Blog != nil {
		out["blog"] = o.Blog
	}
	if o.Gtag != nil {
		out["gtag"] = o.Gtag
	}
	return json.Marshal(out)
}

func (p PluginRef) MarshalJSON() ([]byte, error) {
	if len(p.Options) == 0 {
		return json.Marshal(p.Name)
	}
	return json.Marshal([]any{p.Name, p.Options})
}

func (n NavItem) MarshalJSON() ([]byte, error) {
	out := map[string]any{"position": n.Position}
	if n.Label != "" {
		out["label"] = n.Label
	}
	switch n.Kind {
	case NavItemDoc:
		out["type"] = "doc"
		out["docId"] = n.DocID
	case NavItemLink:
		out["href"] = n.Href
	case NavItemPage:
		out["to"] = n.To
	}
	return json.Marshal(out)
}

// RenderCopyright returns the footer copyright with {year} replaced by now's year.
func (f Footer) RenderCopyright(now time.Time) string {
	return strings.ReplaceAll(f.Copyright, "{year}", strconv.Itoa(now.Year()))
}

package config

import "maps"

// Clone returns an alias-free deep copy of s.
func (s *Site) Clone() *Site {
	if s == nil {
		return nil
	}
	out := *s
	out.Themes = cloneSlice(s.Themes)

	out.I18n.Locales = cloneSlice(s.I18n.Locales)
	if s.I18n.LocaleConfigs != nil {
		out.I18n.LocaleConfigs = maps.Clone(s.I18n.LocaleConfigs)
	}

	if s.Presets != nil {
		out.Presets = make([]Preset, len(s.Presets))
		for i, p := range s.Presets {
			out.Presets[i] = Preset{Name: p.Name, Options: p.Options.clone()}
		}
	}

	tc := &out.ThemeConfig
	tc.Metadata = cloneSlice(s.ThemeConfig.Metadata)
	if s.ThemeConfig.Navbar.Logo != nil {
		logo := *s.ThemeConfig.Navbar.Logo
		tc.Navbar.Logo = &logo
	}
	tc.Navbar.Items = cloneSlice(s.ThemeConfig.Navbar.Items)
	if s.ThemeConfig.Footer.Links != nil {
		tc.Footer.Links = make([]FooterLinkGroup, len(s.ThemeConfig.Footer.Links))
		for i, g := range s.ThemeConfig.Footer.Links {
			tc.Footer.Links[i] = FooterLinkGroup{Title: g.Title, Items: cloneSlice(g.Items)}
		}
	}
	tc.Prism.AdditionalLanguages = cloneSlice(s.ThemeConfig.Prism.AdditionalLanguages)
	return &out
}

func (o PresetOptions) clone() PresetOptions {
	out := o
	if o.Docs != nil {
		d := *o.Docs
		d.BeforeDefaultRemarkPlugins = clonePlugins(o.Docs.BeforeDefaultRemarkPlugins)
		d.RemarkPlugins = clonePlugins(o.Docs.RemarkPlugins)
		out.Docs = &d
	}
	if o.Blog != nil {
		b := *o.Blog
		out.Blog = &b
	}
	if o.Gtag != nil {
		g := *o.Gtag
		out.Gtag = &g
	}
	out.Theme.CustomCSS = cloneSlice(o.Theme.CustomCSS)
	return out
}

func clonePlugins(in []PluginRef) []PluginRef {
	if in == nil {
		return nil
	}
	out := make([]PluginRef, len(in))
	for i, p := range in {
		out[i] = PluginRef{Name: p.Name, Options: cloneOptions(p.Options)}
	}
	return out
}

// cloneOptions deep-copies a decoded options object (nested maps and lists).
func cloneOptions(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneOptions(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

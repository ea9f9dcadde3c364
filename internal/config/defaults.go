package config

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Framework defaults for optional fields.
const (
	DefaultBrokenLinkPolicy  = BrokenLinksWarn
	DefaultDocsPath          = "docs"
	DefaultBlogPath          = "blog"
	DefaultPostsPerPage      = 10
	DefaultSitemapChangeFreq = ChangeFreqWeekly
	DefaultSitemapPriority   = 0.5
	DefaultSitemapFilename   = "sitemap.xml"
	DefaultNavItemPosition   = PositionLeft
	DefaultFooterStyle       = FooterLight
	DefaultPrismTheme        = "github"
	DefaultPrismDarkTheme    = "dracula"
)

// DefaultApplier fills one configuration domain of a Site from the raw literal,
// substituting defaults for absent values.
type DefaultApplier interface {
	ApplyDefaults(raw *rawSite, site *Site)
	Domain() string
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		&SiteDefaultApplier{},
		&I18nDefaultApplier{},
		&PresetDefaultApplier{},
		&ThemeConfigDefaultApplier{},
	}
}

// SiteDefaultApplier handles top-level scalar fields.
type SiteDefaultApplier struct{}

func (a *SiteDefaultApplier) Domain() string { return "site" }

func (a *SiteDefaultApplier) ApplyDefaults(r *rawSite, s *Site) {
	s.Title = r.Title.value
	s.Tagline = r.Tagline.value
	s.URL = r.URL.value
	s.BaseURL = r.BaseURL.value
	s.OrganizationName = r.OrganizationName.value
	s.ProjectName = r.ProjectName.value
	s.DeploymentBranch = r.DeploymentBranch.value
	s.Favicon = r.Favicon.value
	s.TrailingSlash = r.TrailingSlash.or(false)
	s.OnBrokenLinks = BrokenLinkPolicy(r.OnBrokenLinks.or(string(DefaultBrokenLinkPolicy)))
	s.OnBrokenMarkdownLinks = BrokenLinkPolicy(r.OnBrokenMarkdownLinks.or(string(DefaultBrokenLinkPolicy)))
	s.Themes = cloneSlice(r.Themes.values)
}

// I18nDefaultApplier derives a LocaleConfig for every declared locale.
type I18nDefaultApplier struct{}

func (a *I18nDefaultApplier) Domain() string { return "i18n" }

func (a *I18nDefaultApplier) ApplyDefaults(r *rawSite, s *Site) {
	if r.I18n == nil {
		return
	}
	s.I18n.DefaultLocale = r.I18n.DefaultLocale.value
	s.I18n.Locales = cloneSlice(r.I18n.Locales.values)
	s.I18n.LocaleConfigs = make(map[string]LocaleConfig, len(s.I18n.Locales))
	for _, l := range s.I18n.Locales {
		s.I18n.LocaleConfigs[l] = defaultLocaleConfig(l)
	}
	for key, lc := range r.I18n.LocaleConfigs {
		base, ok := s.I18n.LocaleConfigs[key]
		if !ok {
			// Undeclared locale; kept so validation can report it.
			base = defaultLocaleConfig(key)
		}
		base.Label = lc.Label.or(base.Label)
		base.Direction = TextDirection(lc.Direction.or(string(base.Direction)))
		base.HTMLLang = lc.HTMLLang.or(base.HTMLLang)
		s.I18n.LocaleConfigs[key] = base
	}
}

var rtlScripts = map[string]bool{
	"Arab": true, "Hebr": true, "Syrc": true, "Thaa": true, "Nkoo": true,
	"Adlm": true, "Mand": true, "Samr": true, "Rohg": true,
}

func defaultLocaleConfig(locale string) LocaleConfig {
	lc := LocaleConfig{Label: locale, Direction: DirectionLTR, HTMLLang: locale}
	tag, err := language.Parse(locale)
	if err != nil {
		return lc
	}
	if name := display.Self.Name(tag); name != "" {
		lc.Label = name
	}
	if script, _ := tag.Script(); rtlScripts[script.String()] {
		lc.Direction = DirectionRTL
	}
	return lc
}

// PresetDefaultApplier resolves every preset's plugin options against framework defaults.
// Presets are never merged with each other.
type PresetDefaultApplier struct{}

func (a *PresetDefaultApplier) Domain() string { return "presets" }

func (a *PresetDefaultApplier) ApplyDefaults(r *rawSite, s *Site) {
	if len(r.Presets) == 0 {
		return
	}
	s.Presets = make([]Preset, 0, len(r.Presets))
	for _, rp := range r.Presets {
		s.Presets = append(s.Presets, Preset{Name: rp.name, Options: presetOptions(&rp.options)})
	}
}

func presetOptions(r *rawPresetOptions) PresetOptions {
	var o PresetOptions
	if !r.Docs.disabled {
		d := r.Docs.value
		o.Docs = &DocsOptions{
			Path:                       d.Path.or(DefaultDocsPath),
			RouteBasePath:              d.RouteBasePath.or(DefaultDocsPath),
			SidebarPath:                d.SidebarPath.value,
			EditURL:                    d.EditURL.value,
			ShowLastUpdateTime:         d.ShowLastUpdateTime.or(false),
			BeforeDefaultRemarkPlugins: pluginRefs(d.BeforeDefaultRemarkPlugins),
			RemarkPlugins:              pluginRefs(d.RemarkPlugins),
		}
	}
	if !r.Blog.disabled {
		b := r.Blog.value
		o.Blog = &BlogOptions{
			Path:            b.Path.or(DefaultBlogPath),
			RouteBasePath:   b.RouteBasePath.or(DefaultBlogPath),
			EditURL:         b.EditURL.value,
			ShowReadingTime: b.ShowReadingTime.or(false),
			PostsPerPage:    DefaultPostsPerPage,
		}
		if b.PostsPerPage.set {
			o.Blog.PostsPerPage = b.PostsPerPage.value
		}
	}
	o.Theme.CustomCSS = cloneSlice(r.Theme.CustomCSS.values)
	o.Sitemap = SitemapOptions{
		ChangeFreq: ChangeFreq(r.Sitemap.ChangeFreq.or(string(DefaultSitemapChangeFreq))),
		Priority:   DefaultSitemapPriority,
		Filename:   r.Sitemap.Filename.or(DefaultSitemapFilename),
	}
	if r.Sitemap.Priority.set {
		o.Sitemap.Priority = r.Sitemap.Priority.value
	}
	if r.Gtag != nil {
		o.Gtag = &GtagOptions{
			TrackingID:  r.Gtag.TrackingID.value,
			AnonymizeIP: r.Gtag.AnonymizeIP.or(false),
		}
	}
	return o
}

func pluginRefs(in []rawPluginRef) []PluginRef {
	if len(in) == 0 {
		return nil
	}
	out := make([]PluginRef, 0, len(in))
	for _, p := range in {
		out = append(out, PluginRef{Name: p.name, Options: cloneOptions(p.options)})
	}
	return out
}

// ThemeConfigDefaultApplier handles navbar, footer, metadata and prism settings.
type ThemeConfigDefaultApplier struct{}

func (a *ThemeConfigDefaultApplier) Domain() string { return "themeConfig" }

func (a *ThemeConfigDefaultApplier) ApplyDefaults(r *rawSite, s *Site) {
	rt := &r.ThemeConfig
	t := &s.ThemeConfig

	for _, m := range rt.Metadata {
		t.Metadata = append(t.Metadata, MetaTag{Name: m.Name.value, Property: m.Property.value, Content: m.Content.value})
	}

	t.Navbar.Title = rt.Navbar.Title.value
	if rt.Navbar.Logo != nil {
		t.Navbar.Logo = &Logo{Alt: rt.Navbar.Logo.Alt.value, Src: rt.Navbar.Logo.Src.value}
	}
	for _, it := range rt.Navbar.Items {
		t.Navbar.Items = append(t.Navbar.Items, NavItem{
			Kind:     navItemKind(it),
			Label:    it.Label.value,
			Position: NavItemPosition(it.Position.or(string(DefaultNavItemPosition))),
			DocID:    it.DocID.value,
			Href:     it.Href.value,
			To:       it.To.value,
		})
	}

	t.Footer.Style = FooterStyle(rt.Footer.Style.or(string(DefaultFooterStyle)))
	t.Footer.Copyright = rt.Footer.Copyright.value
	for _, g := range rt.Footer.Links {
		group := FooterLinkGroup{Title: g.Title.value, Items: make([]FooterLink, 0, len(g.Items))}
		for _, l := range g.Items {
			group.Items = append(group.Items, FooterLink{Label: l.Label.value, To: l.To.value, Href: l.Href.value})
		}
		t.Footer.Links = append(t.Footer.Links, group)
	}

	t.Prism = Prism{
		Theme:               rt.Prism.Theme.or(DefaultPrismTheme),
		DarkTheme:           rt.Prism.DarkTheme.or(DefaultPrismDarkTheme),
		AdditionalLanguages: cloneSlice(rt.Prism.AdditionalLanguages.values),
	}
}

// navItemKind infers the variant: an explicit type wins, otherwise the link field decides.
func navItemKind(it rawNavItem) NavItemKind {
	switch {
	case it.Type.value != "" && it.Type.value != "default":
		return NavItemKind(it.Type.value)
	case it.Href.set:
		return NavItemLink
	case it.To.set:
		return NavItemPage
	}
	return ""
}

package config

// Site is the validated configuration of a documentation site.
//
// A Site is produced by Load, Decode or LoadFile and is treated as immutable:
// nothing in this module modifies a Site after it is returned, and
// ResolveEnvironmentOverrides works on a Clone. Consumers must do the same.
type Site struct {
	Title            string `json:"title"`
	Tagline          string `json:"tagline"`
	URL              string `json:"url"`
	BaseURL          string `json:"baseUrl"`
	OrganizationName string `json:"organizationName,omitempty"`
	ProjectName      string `json:"projectName,omitempty"`
	DeploymentBranch string `json:"deploymentBranch,omitempty"`
	Favicon          string `json:"favicon,omitempty"`
	TrailingSlash    bool   `json:"trailingSlash"`

	OnBrokenLinks         BrokenLinkPolicy `json:"onBrokenLinks"`
	OnBrokenMarkdownLinks BrokenLinkPolicy `json:"onBrokenMarkdownLinks"`

	I18n        I18n        `json:"i18n"`
	Themes      []string    `json:"themes,omitempty"`
	Presets     []Preset    `json:"presets,omitempty"`
	ThemeConfig ThemeConfig `json:"themeConfig"`
}

// I18n lists the locales the site is built for.
type I18n struct {
	DefaultLocale string                  `json:"defaultLocale"`
	Locales       []string                `json:"locales"`
	LocaleConfigs map[string]LocaleConfig `json:"localeConfigs,omitempty"`
}

// LocaleConfig holds per-locale presentation settings.
type LocaleConfig struct {
	Label     string        `json:"label"`
	Direction TextDirection `json:"direction"`
	HTMLLang  string        `json:"htmlLang"`
}

// Preset is a named bundle of plugin options. Order in Site.Presets is significant
// to the build tool and is preserved as written.
type Preset struct {
	Name    string
	Options PresetOptions
}

// PresetOptions configures the plugins of a preset.
// A nil Docs or Blog means the section was disabled with `false`.
type PresetOptions struct {
	Docs    *DocsOptions
	Blog    *BlogOptions
	Theme   ThemeOptions
	Sitemap SitemapOptions
	Gtag    *GtagOptions
}

type DocsOptions struct {
	Path                       string      `json:"path"`
	RouteBasePath              string      `json:"routeBasePath"`
	SidebarPath                string      `json:"sidebarPath,omitempty"`
	EditURL                    string      `json:"editUrl,omitempty"`
	ShowLastUpdateTime         bool        `json:"showLastUpdateTime"`
	BeforeDefaultRemarkPlugins []PluginRef `json:"beforeDefaultRemarkPlugins,omitempty"`
	RemarkPlugins              []PluginRef `json:"remarkPlugins,omitempty"`
}

type BlogOptions struct {
	Path            string `json:"path"`
	RouteBasePath   string `json:"routeBasePath"`
	EditURL         string `json:"editUrl,omitempty"`
	ShowReadingTime bool   `json:"showReadingTime"`
	PostsPerPage    int    `json:"postsPerPage"`
}

type ThemeOptions struct {
	CustomCSS []string `json:"customCss,omitempty"`
}

type SitemapOptions struct {
	ChangeFreq ChangeFreq `json:"changefreq"`
	Priority   float64    `json:"priority"`
	Filename   string     `json:"filename"`
}

// GtagOptions enables Google Analytics injection.
type GtagOptions struct {
	TrackingID  string `json:"trackingID"`
	AnonymizeIP bool   `json:"anonymizeIP"`
}

// PluginRef names a markdown plugin and its options.
type PluginRef struct {
	Name    string
	Options map[string]any
}

type ThemeConfig struct {
	Metadata []MetaTag `json:"metadata,omitempty"`
	Navbar   Navbar    `json:"navbar"`
	Footer   Footer    `json:"footer"`
	Prism    Prism     `json:"prism"`
}

// MetaTag is a <meta> element added to every page. Exactly one of Name or Property is set.
type MetaTag struct {
	Name     string `json:"name,omitempty"`
	Property string `json:"property,omitempty"`
	Content  string `json:"content"`
}

type Navbar struct {
	Title string    `json:"title,omitempty"`
	Logo  *Logo     `json:"logo,omitempty"`
	Items []NavItem `json:"items,omitempty"`
}

type Logo struct {
	Alt string `json:"alt,omitempty"`
	Src string `json:"src"`
}

// NavItem is one navbar entry. Kind selects which of DocID, Href or To is meaningful.
type NavItem struct {
	Kind     NavItemKind
	Label    string
	Position NavItemPosition
	DocID    string
	Href     string
	To       string
}

type Footer struct {
	Style     FooterStyle       `json:"style"`
	Links     []FooterLinkGroup `json:"links,omitempty"`
	Copyright string            `json:"copyright,omitempty"`
}

type FooterLinkGroup struct {
	Title string       `json:"title,omitempty"`
	Items []FooterLink `json:"items"`
}

// FooterLink points either inside the site (To) or outside it (Href).
type FooterLink struct {
	Label string `json:"label"`
	To    string `json:"to,omitempty"`
	Href  string `json:"href,omitempty"`
}

// Prism selects the code block highlighting themes.
type Prism struct {
	Theme               string   `json:"theme"`
	DarkTheme           string   `json:"darkTheme"`
	AdditionalLanguages []string `json:"additionalLanguages,omitempty"`
}

// Preset returns the first preset called name.
func (s *Site) Preset(name string) (Preset, bool) {
	for _, p := range s.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

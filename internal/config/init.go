package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// ExampleSite returns the configuration written by Init: a documentation and
// blog site for building serverless .NET applications on AWS.
func ExampleSite() *Site {
	const editURL = "https://github.com/facebook/docusaurus/tree/main/packages/create-docusaurus/templates/shared/"
	return &Site{
		Title:                 "Serverless .NET",
		Tagline:               "Build serverless applications on AWS with .NET",
		URL:                   "https://serverlessdotnet.dev",
		BaseURL:               "/",
		OrganizationName:      "jeastham1993",
		ProjectName:           "serverlessdotnet.github.io",
		Favicon:               "img/favicon.ico",
		TrailingSlash:         false,
		OnBrokenLinks:         BrokenLinksThrow,
		OnBrokenMarkdownLinks: BrokenLinksWarn,
		I18n: I18n{
			DefaultLocale: "en",
			Locales:       []string{"en"},
			LocaleConfigs: map[string]LocaleConfig{"en": defaultLocaleConfig("en")},
		},
		Themes: []string{"mdx-v2"},
		Presets: []Preset{{
			Name: "classic",
			Options: PresetOptions{
				Docs: &DocsOptions{
					Path:          DefaultDocsPath,
					RouteBasePath: DefaultDocsPath,
					SidebarPath:   "./sidebars.js",
					EditURL:       editURL,
					BeforeDefaultRemarkPlugins: []PluginRef{
						{Name: "@code-hike/mdx", Options: map[string]any{"theme": "nord"}},
					},
				},
				Blog: &BlogOptions{
					Path:            DefaultBlogPath,
					RouteBasePath:   DefaultBlogPath,
					EditURL:         editURL,
					ShowReadingTime: true,
					PostsPerPage:    DefaultPostsPerPage,
				},
				Theme: ThemeOptions{CustomCSS: []string{"@code-hike/mdx/styles.css", "./src/css/custom.css"}},
				Sitemap: SitemapOptions{
					ChangeFreq: ChangeFreqWeekly,
					Priority:   0.5,
					Filename:   "sitemap.xml",
				},
				Gtag: &GtagOptions{TrackingID: "G-ELBLZN8LN3", AnonymizeIP: true},
			},
		}},
		ThemeConfig: ThemeConfig{
			Metadata: []MetaTag{{Name: "keywords", Content: ".NET, serverless, aws, aws lambda, dotnet"}},
			Navbar: Navbar{
				Title: "Serverless .NET",
				Items: []NavItem{
					{Kind: NavItemDoc, DocID: "intro", Position: PositionLeft, Label: "Tutorial"},
					{Kind: NavItemLink, Href: "https://github.com/jeastham1993/serverless-dotnet.github.io", Label: "GitHub", Position: PositionRight},
				},
			},
			Footer: Footer{
				Style: FooterDark,
				Links: []FooterLinkGroup{{
					Title: "Docs",
					Items: []FooterLink{{Label: "Tutorial", To: "/docs/intro"}},
				}},
				Copyright: "Copyright © {year} Serverless .NET. Built with Docusaurus.",
			},
			Prism: Prism{Theme: DefaultPrismTheme, DarkTheme: DefaultPrismDarkTheme},
		},
	}
}

// InitOptions tunes the configuration written by Init.
type InitOptions struct {
	// Deployment, when set, replaces the example's GitHub Pages metadata.
	Deployment *Deployment
}

// Init writes the example configuration to path as YAML. An existing file is
// only replaced when force is set.
func Init(path string, force bool, opts InitOptions) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration %s already exists (use --force to overwrite): %w", path, fs.ErrExist)
		}
	}
	site := ExampleSite()
	if opts.Deployment != nil {
		site = opts.Deployment.Apply(site)
	}
	data, err := site.EncodeYAML()
	if err != nil {
		return err
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return err
	}
	slog.Info("Wrote example configuration", logfields.Path(path), logfields.Fingerprint(site.Fingerprint()))
	return nil
}

// EncodeYAML renders s in block-style YAML with the same shape as its JSON form.
func (s *Site) EncodeYAML() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("convert configuration to YAML: %w", err)
	}
	clearStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// clearStyle drops the flow and quoting styles inherited from JSON. Scalars keep
// their tags, so strings that look like other types are still quoted.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// WriteFileAtomic replaces path with data; readers never observe a partial file.
func WriteFileAtomic(path string, data []byte) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", path, err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			slog.Debug("Cleanup pending file", logfields.Path(path), logfields.Error(err))
		}
	}()
	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

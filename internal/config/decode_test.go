package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalLiteral holds only the required fields.
func minimalLiteral() map[string]any {
	return map[string]any{
		"title":   "My Site",
		"tagline": "Docs for everyone",
		"url":     "https://example.com",
		"baseUrl": "/",
		"i18n": map[string]any{
			"defaultLocale": "en",
			"locales":       []any{"en"},
		},
	}
}

func withField(lit map[string]any, key string, value any) map[string]any {
	lit[key] = value
	return lit
}

func requireValidationError(t *testing.T, err error, field string) *ValidationError {
	t.Helper()
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected *ValidationError, got %T: %v", err, err)
	assert.Equal(t, field, ve.Field, "reason: %s", ve.Reason)
	return ve
}

func TestLoad_MinimalLiteralUsesDefaults(t *testing.T) {
	site, err := Load(minimalLiteral())
	require.NoError(t, err)

	want := &Site{
		Title:                 "My Site",
		Tagline:               "Docs for everyone",
		URL:                   "https://example.com",
		BaseURL:               "/",
		TrailingSlash:         false,
		OnBrokenLinks:         BrokenLinksWarn,
		OnBrokenMarkdownLinks: BrokenLinksWarn,
		I18n: I18n{
			DefaultLocale: "en",
			Locales:       []string{"en"},
			LocaleConfigs: map[string]LocaleConfig{
				"en": {Label: "English", Direction: DirectionLTR, HTMLLang: "en"},
			},
		},
		ThemeConfig: ThemeConfig{
			Footer: Footer{Style: FooterLight},
			Prism:  Prism{Theme: DefaultPrismTheme, DarkTheme: DefaultPrismDarkTheme},
		},
	}
	if diff := cmp.Diff(want, site, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("minimal site mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_TrailingSlashDefaultsToFalse(t *testing.T) {
	site, err := Load(minimalLiteral())
	require.NoError(t, err)
	assert.False(t, site.TrailingSlash)

	site, err = Load(withField(minimalLiteral(), "trailingSlash", true))
	require.NoError(t, err)
	assert.True(t, site.TrailingSlash)
}

func TestLoad_DefaultLocaleIsAlwaysListed(t *testing.T) {
	tests := []struct {
		name    string
		i18n    map[string]any
		wantErr bool
	}{
		{"single", map[string]any{"defaultLocale": "en", "locales": []any{"en"}}, false},
		{"several", map[string]any{"defaultLocale": "fr", "locales": []any{"en", "fr", "de"}}, false},
		{"canonicalized", map[string]any{"defaultLocale": "zh-hans", "locales": []any{"en", "zh-Hans"}}, false},
		{"not listed", map[string]any{"defaultLocale": "fr", "locales": []any{"en"}}, true},
		{"empty locales", map[string]any{"defaultLocale": "en", "locales": []any{}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site, err := Load(withField(minimalLiteral(), "i18n", tt.i18n))
			if tt.wantErr {
				require.Error(t, err)
				_, ok := AsValidationError(err)
				assert.True(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, site.I18n.Locales, site.I18n.DefaultLocale)
		})
	}
}

func TestLoad_DefaultLocaleMissingFromLocales(t *testing.T) {
	_, err := Load(withField(minimalLiteral(), "i18n", map[string]any{
		"defaultLocale": "fr",
		"locales":       []any{"en"},
	}))
	ve := requireValidationError(t, err, "i18n.defaultLocale")
	assert.Contains(t, ve.Reason, `"fr"`)
}

func TestLoad_InvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"not a url", "not a url"},
		{"relative", "/docs"},
		{"no host", "https://"},
		{"ftp scheme", "ftp://example.com"},
		{"bad host", "https://exa mple.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(withField(minimalLiteral(), "url", tt.url))
			requireValidationError(t, err, "url")
		})
	}
}

func TestLoad_EnumOutsideAllowedSet(t *testing.T) {
	_, err := Load(withField(minimalLiteral(), "onBrokenLinks", "explode"))
	ve := requireValidationError(t, err, "onBrokenLinks")
	assert.Contains(t, ve.Reason, `"explode"`)
	assert.Contains(t, ve.Reason, "ignore|throw|warn")
}

func TestLoad_EnumIsCaseInsensitive(t *testing.T) {
	res, err := Decode([]byte(`
title: t
tagline: t
url: https://example.com
baseUrl: /
onBrokenLinks: THROW
i18n: {defaultLocale: en, locales: [en]}
`))
	require.NoError(t, err)
	assert.Equal(t, BrokenLinksThrow, res.Site.OnBrokenLinks)
	assert.Contains(t, res.Warnings, "normalized onBrokenLinks from 'THROW' to 'throw'")
}

func TestLoad_Idempotent(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "serverless.yaml"))
	require.NoError(t, err)

	first, err := Decode(data)
	require.NoError(t, err)
	second, err := Decode(data)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Site, second.Site); diff != "" {
		t.Fatalf("decoding twice differs (-first +second):\n%s", diff)
	}
	assert.NotSame(t, first.Site, second.Site)

	a, err := Load(minimalLiteral())
	require.NoError(t, err)
	b, err := Load(minimalLiteral())
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(a, b))
}

func TestLoad_RequiredFields(t *testing.T) {
	for _, field := range []string{"title", "tagline", "url", "baseUrl", "i18n"} {
		t.Run(field, func(t *testing.T) {
			lit := minimalLiteral()
			delete(lit, field)
			_, err := Load(lit)
			ve := requireValidationError(t, err, field)
			assert.Equal(t, "is required", ve.Reason)
		})
	}

	t.Run("blank title", func(t *testing.T) {
		_, err := Load(withField(minimalLiteral(), "title", "   "))
		requireValidationError(t, err, "title")
	})
	t.Run("defaultLocale", func(t *testing.T) {
		_, err := Load(withField(minimalLiteral(), "i18n", map[string]any{"locales": []any{"en"}}))
		requireValidationError(t, err, "i18n.defaultLocale")
	})
}

func TestLoad_EmptyLiteral(t *testing.T) {
	_, err := Load(nil)
	requireValidationError(t, err, "")

	_, err = Decode([]byte("  \n"))
	requireValidationError(t, err, "")

	_, err = Decode([]byte("- a\n- b\n"))
	ve := requireValidationError(t, err, "")
	assert.Contains(t, ve.Reason, "must be an object")
}

func TestLoad_UnrepresentableValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"channel", make(chan int)},
		{"function", func() {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit := minimalLiteral()
			lit["favicon"] = tt.value

			var err error
			require.NotPanics(t, func() { _, err = Load(lit) })
			ve := requireValidationError(t, err, "")
			assert.Contains(t, ve.Reason, "cannot be represented")
		})
	}
}

func TestDecode_ServerlessSite(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "serverless.yaml"))
	require.NoError(t, err)

	res, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	if diff := cmp.Diff(ExampleSite(), res.Site, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("serverless site mismatch (-want +got):\n%s", diff)
	}

	classic, ok := res.Site.Preset("classic")
	require.True(t, ok)
	require.NotNil(t, classic.Options.Docs)
	assert.Equal(t, "docs", classic.Options.Docs.Path)
	require.Len(t, classic.Options.Docs.BeforeDefaultRemarkPlugins, 1)
	assert.Equal(t, "@code-hike/mdx", classic.Options.Docs.BeforeDefaultRemarkPlugins[0].Name)
	assert.Equal(t, 10, classic.Options.Blog.PostsPerPage)

	items := res.Site.ThemeConfig.Navbar.Items
	require.Len(t, items, 2)
	assert.Equal(t, NavItemDoc, items[0].Kind)
	assert.Equal(t, NavItemLink, items[1].Kind)
	assert.Equal(t, PositionRight, items[1].Position)
}

func TestDecode_PresetOrderPreserved(t *testing.T) {
	res, err := Decode([]byte(`
title: t
tagline: t
url: https://example.com
baseUrl: /
i18n: {defaultLocale: en, locales: [en]}
themes: [mdx-v2, live-codeblock, search]
presets:
  - classic
  - [blogOnly, {docs: false, blog: {postsPerPage: 5}}]
  - [docsOnly, {blog: false}]
`))
	require.NoError(t, err)

	s := res.Site
	assert.Equal(t, []string{"mdx-v2", "live-codeblock", "search"}, s.Themes)
	require.Len(t, s.Presets, 3)
	assert.Equal(t, "classic", s.Presets[0].Name)
	assert.Equal(t, "blogOnly", s.Presets[1].Name)
	assert.Equal(t, "docsOnly", s.Presets[2].Name)

	assert.NotNil(t, s.Presets[0].Options.Docs)
	assert.NotNil(t, s.Presets[0].Options.Blog)
	assert.Nil(t, s.Presets[1].Options.Docs)
	assert.Equal(t, 5, s.Presets[1].Options.Blog.PostsPerPage)
	assert.Nil(t, s.Presets[2].Options.Blog)
	assert.Equal(t, DefaultSitemapFilename, s.Presets[2].Options.Sitemap.Filename)
}

func TestDecode_FieldPaths(t *testing.T) {
	const head = `
title: t
tagline: t
url: https://example.com
baseUrl: /
i18n: {defaultLocale: en, locales: [en]}
`
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"wrong scalar type", "trailingSlash: maybe\n", "trailingSlash"},
		{"favicon not a string", "favicon: [a, b]\n", "favicon"},
		{"sitemap priority range", "presets:\n  - [classic, {sitemap: {priority: 1.5}}]\n", "presets[0].options.sitemap.priority"},
		{"sitemap priority nan", "presets:\n  - [classic, {sitemap: {priority: .nan}}]\n", "presets[0].options.sitemap.priority"},
		{"sitemap priority inf", "presets:\n  - [classic, {sitemap: {priority: .inf}}]\n", "presets[0].options.sitemap.priority"},
		{"sitemap priority type", "presets:\n  - [classic, {sitemap: {priority: high}}]\n", "presets[0].options.sitemap.priority"},
		{"changefreq", "presets:\n  - [classic, {sitemap: {changefreq: sometimes}}]\n", "presets[0].options.sitemap.changefreq"},
		{"sitemap filename", "presets:\n  - [classic, {sitemap: {filename: sitemap.txt}}]\n", "presets[0].options.sitemap.filename"},
		{"posts per page", "presets:\n  - [classic, {blog: {postsPerPage: 0}}]\n", "presets[0].options.blog.postsPerPage"},
		{"gtag without id", "presets:\n  - [classic, {gtag: {anonymizeIP: true}}]\n", "presets[0].options.gtag.trackingID"},
		{"preset tuple too long", "presets:\n  - [classic, {}, extra]\n", "presets[0]"},
		{"preset options not object", "presets:\n  - [classic, docs]\n", "presets[0].options"},
		{"preset name not string", "presets:\n  - [42]\n", "presets[0].name"},
		{"docs section", "presets:\n  - [classic, {docs: yes please}]\n", "presets[0].options.docs"},
		{"plugin name", "presets:\n  - [classic, {docs: {remarkPlugins: [[\"\", {}]]}}]\n", "presets[0].options.docs.remarkPlugins[0].name"},
		{"nav href", "themeConfig:\n  navbar:\n    items:\n      - {type: doc, docId: intro}\n      - {href: not-a-url, label: X}\n", "themeConfig.navbar.items[1].href"},
		{"nav doc id", "themeConfig:\n  navbar:\n    items:\n      - {type: doc, label: Docs}\n", "themeConfig.navbar.items[0].docId"},
		{"nav position", "themeConfig:\n  navbar:\n    items:\n      - {href: https://x.dev, label: X, position: middle}\n", "themeConfig.navbar.items[0].position"},
		{"nav unknown type", "themeConfig:\n  navbar:\n    items:\n      - {type: dropdown, label: X}\n", "themeConfig.navbar.items[0].type"},
		{"nav variant missing", "themeConfig:\n  navbar:\n    items:\n      - {label: X}\n", "themeConfig.navbar.items[0]"},
		{"footer style", "themeConfig:\n  footer: {style: neon}\n", "themeConfig.footer.style"},
		{"footer link", "themeConfig:\n  footer:\n    links:\n      - title: Docs\n        items:\n          - {label: A}\n", "themeConfig.footer.links[0].items[0]"},
		{"metadata", "themeConfig:\n  metadata:\n    - {content: x}\n", "themeConfig.metadata[0]"},
		{"logo src", "themeConfig:\n  navbar:\n    logo: {alt: Logo}\n", "themeConfig.navbar.logo.src"},
		{"locale config undeclared", "i18n:\n  defaultLocale: en\n  locales: [en]\n  localeConfigs:\n    fr: {label: Français}\n", "i18n.localeConfigs.fr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := head + tt.body
			if tt.name == "locale config undeclared" {
				doc = "title: t\ntagline: t\nurl: https://example.com\nbaseUrl: /\n" + tt.body
			}
			_, err := Decode([]byte(doc))
			requireValidationError(t, err, tt.field)
		})
	}
}

func TestDecode_Normalization(t *testing.T) {
	res, err := Decode([]byte(`
title: "  Padded  "
tagline: t
url: https://example.com/
baseUrl: /
unknownKey: 1
i18n:
  defaultLocale: EN
  locales: [en, EN, ar]
themeConfig:
  footer: {style: Dark}
  navbar:
    items:
      - {type: DOC, docId: intro, position: Right}
`))
	require.NoError(t, err)
	s := res.Site

	assert.Equal(t, "Padded", s.Title)
	assert.Equal(t, "https://example.com", s.URL)
	assert.Equal(t, "en", s.I18n.DefaultLocale)
	assert.Equal(t, []string{"en", "ar"}, s.I18n.Locales)
	assert.Equal(t, DirectionRTL, s.I18n.LocaleConfigs["ar"].Direction)
	assert.Equal(t, FooterDark, s.ThemeConfig.Footer.Style)
	assert.Equal(t, NavItemDoc, s.ThemeConfig.Navbar.Items[0].Kind)
	assert.Equal(t, PositionRight, s.ThemeConfig.Navbar.Items[0].Position)

	assert.Contains(t, res.Warnings, "unknown field 'unknownKey' ignored")
	assert.Contains(t, res.Warnings, "normalized url from 'https://example.com/' to 'https://example.com'")
	assert.Contains(t, res.Warnings, "dropped duplicate locale 'en' from i18n.locales")
}

func TestDecode_LocaleConfigKeyCollision(t *testing.T) {
	res, err := Decode([]byte(`
title: t
tagline: t
url: https://example.com
baseUrl: /
i18n:
  defaultLocale: en-US
  locales: [en-US]
  localeConfigs:
    en-us: {label: Lowercase}
    en-US: {label: Canonical}
`))
	require.NoError(t, err)

	assert.Equal(t, "Canonical", res.Site.I18n.LocaleConfigs["en-US"].Label)
	assert.Len(t, res.Site.I18n.LocaleConfigs, 1)
	assert.Contains(t, res.Warnings, "dropped i18n.localeConfigs entry 'en-us': locale 'en-US' is already configured by 'en-US'")
}

func TestDecode_Advisories(t *testing.T) {
	res, err := Decode([]byte(`
title: t
tagline: t
url: https://example.com/site
baseUrl: /
organizationName: acme
i18n: {defaultLocale: en, locales: [en]}
`))
	require.NoError(t, err)
	require.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Warnings[0], "organizationName and projectName")
	assert.Contains(t, res.Warnings[1], "contains a path")
}

func TestDecode_UnvalidatedPaths(t *testing.T) {
	res, err := Decode([]byte(`
title: t
tagline: t
url: https://example.com
baseUrl: /
favicon: img/does-not-exist.ico
i18n: {defaultLocale: en, locales: [en]}
presets:
  - [classic, {docs: {sidebarPath: ./missing.js, editUrl: "not even a url"}}]
`))
	require.NoError(t, err)
	assert.Equal(t, "img/does-not-exist.ico", res.Site.Favicon)
	assert.Equal(t, "not even a url", res.Site.Presets[0].Options.Docs.EditURL)
}

func TestLoadFile(t *testing.T) {
	site, err := LoadFile(filepath.Join("testdata", "serverless.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Serverless .NET", site.Title)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
	_, isValidation := AsValidationError(err)
	assert.False(t, isValidation)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "url", Reason: "must be absolute", Source: "env DOCSITE_URL"}
	assert.Equal(t, "invalid configuration: field 'url': must be absolute (from env DOCSITE_URL)", err.Error())

	err = &ValidationError{Reason: "configuration is empty"}
	assert.Equal(t, "invalid configuration: configuration is empty", err.Error())
}

func TestDecode_CompactJSONFieldPaths(t *testing.T) {
	const head = `"title":"t","tagline":"t","url":"https://example.com","baseUrl":"/","i18n":{"defaultLocale":"en","locales":["en"]}`
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"navbar items object", `"themeConfig":{"navbar":{"items":{"a":1}}}`, "themeConfig.navbar.items"},
		{"navbar list", `"themeConfig":{"navbar":[]}`, "themeConfig.navbar"},
		{"nav item scalar", `"themeConfig":{"navbar":{"items":["docs"]}}`, "themeConfig.navbar.items[0]"},
		{"footer links object", `"themeConfig":{"footer":{"links":{"title":"Docs"}}}`, "themeConfig.footer.links"},
		{"footer group items", `"themeConfig":{"footer":{"links":[{"items":"x"}]}}`, "themeConfig.footer.links[0].items"},
		{"metadata object", `"themeConfig":{"metadata":{"name":"keywords"}}`, "themeConfig.metadata"},
		{"presets object", `"presets":{"classic":{}}`, "presets"},
		{"remark plugins object", `"presets":[["classic",{"docs":{"remarkPlugins":{"a":1}}}]]`, "presets[0].options.docs.remarkPlugins"},
		{"sitemap list", `"presets":[["classic",{"sitemap":[1]}]]`, "presets[0].options.sitemap"},
		{"prism scalar", `"themeConfig":{"prism":"github"}`, "themeConfig.prism"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte("{" + head + "," + tt.body + "}"))
			requireValidationError(t, err, tt.field)
		})
	}

	t.Run("locale configs list", func(t *testing.T) {
		doc := `{"title":"t","tagline":"t","url":"https://example.com","baseUrl":"/","i18n":{"defaultLocale":"en","locales":["en"],"localeConfigs":["en"]}}`
		_, err := Decode([]byte(doc))
		requireValidationError(t, err, "i18n.localeConfigs")
	})
	t.Run("i18n scalar", func(t *testing.T) {
		doc := `{"title":"t","tagline":"t","url":"https://example.com","baseUrl":"/","i18n":"en"}`
		_, err := Decode([]byte(doc))
		requireValidationError(t, err, "i18n")
	})
}

package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON_RoundTrip(t *testing.T) {
	site := loadExample(t)

	data, err := site.MarshalIndent()
	require.NoError(t, err)

	res, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	if diff := cmp.Diff(site, res.Site, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("export does not round-trip (-want +got):\n%s", diff)
	}
	assert.Equal(t, site.Fingerprint(), res.Site.Fingerprint())
}

func TestMarshalJSON_Shape(t *testing.T) {
	res, err := Decode([]byte(`
title: t
tagline: t
url: https://example.com
baseUrl: /
i18n: {defaultLocale: en, locales: [en]}
presets:
  - - classic
    - docs:
        remarkPlugins: [admonitions, [mermaid, {theme: dark}]]
      blog: false
themeConfig:
  navbar:
    items:
      - {type: doc, docId: intro, label: Docs}
      - {href: "https://github.com/acme", label: GitHub, position: right}
      - {to: /blog, label: Blog}
`))
	require.NoError(t, err)

	data, err := json.Marshal(res.Site)
	require.NoError(t, err)

	var got struct {
		OnBrokenLinks string              `json:"onBrokenLinks"`
		Presets       [][]json.RawMessage `json:"presets"`
		ThemeConfig   struct {
			Navbar struct {
				Items []map[string]any `json:"items"`
			} `json:"navbar"`
		} `json:"themeConfig"`
	}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "warn", got.OnBrokenLinks)
	require.Len(t, got.Presets, 1)
	require.Len(t, got.Presets[0], 2)
	assert.JSONEq(t, `"classic"`, string(got.Presets[0][0]))

	var opts map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(got.Presets[0][1], &opts))
	assert.JSONEq(t, `false`, string(opts["blog"]))
	assert.NotContains(t, opts, "gtag")

	var docs struct {
		RemarkPlugins []json.RawMessage `json:"remarkPlugins"`
	}
	require.NoError(t, json.Unmarshal(opts["docs"], &docs))
	require.Len(t, docs.RemarkPlugins, 2)
	assert.JSONEq(t, `"admonitions"`, string(docs.RemarkPlugins[0]))
	assert.JSONEq(t, `["mermaid", {"theme": "dark"}]`, string(docs.RemarkPlugins[1]))

	items := got.ThemeConfig.Navbar.Items
	require.Len(t, items, 3)
	assert.Equal(t, map[string]any{"type": "doc", "docId": "intro", "label": "Docs", "position": "left"}, items[0])
	assert.Equal(t, map[string]any{"href": "https://github.com/acme", "label": "GitHub", "position": "right"}, items[1])
	assert.Equal(t, map[string]any{"to": "/blog", "label": "Blog", "position": "left"}, items[2])
}

func TestFooter_RenderCopyright(t *testing.T) {
	f := Footer{Copyright: "Copyright © {year} Serverless .NET."}
	now := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Copyright © 2026 Serverless .NET.", f.RenderCopyright(now))
	assert.Empty(t, Footer{}.RenderCopyright(now))
}

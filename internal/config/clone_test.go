package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone_NoAliasing(t *testing.T) {
	orig := loadExample(t)
	snapshot := loadExample(t)

	c := orig.Clone()
	require.Empty(t, cmp.Diff(orig, c))

	c.Themes[0] = "changed"
	c.I18n.Locales[0] = "de"
	c.I18n.LocaleConfigs["en"] = LocaleConfig{Label: "changed"}
	c.Presets[0].Name = "changed"
	c.Presets[0].Options.Docs.EditURL = "changed"
	c.Presets[0].Options.Docs.BeforeDefaultRemarkPlugins[0].Options["theme"] = "changed"
	c.Presets[0].Options.Blog.PostsPerPage = 99
	c.Presets[0].Options.Theme.CustomCSS[0] = "changed"
	c.Presets[0].Options.Gtag.TrackingID = "changed"
	c.ThemeConfig.Metadata[0].Content = "changed"
	c.ThemeConfig.Navbar.Items[0].Label = "changed"
	c.ThemeConfig.Footer.Links[0].Items[0].Label = "changed"

	if diff := cmp.Diff(snapshot, orig); diff != "" {
		t.Fatalf("clone aliases original (-want +got):\n%s", diff)
	}
}

func TestClone_Nil(t *testing.T) {
	var s *Site
	assert.Nil(t, s.Clone())
}

func TestCloneValue_Nested(t *testing.T) {
	in := map[string]any{
		"list":   []any{"a", map[string]any{"k": "v"}},
		"nested": map[string]any{"n": 1},
	}
	out := cloneOptions(in)
	out["list"].([]any)[1].(map[string]any)["k"] = "changed"
	out["nested"].(map[string]any)["n"] = 2

	assert.Equal(t, "v", in["list"].([]any)[1].(map[string]any)["k"])
	assert.Equal(t, 1, in["nested"].(map[string]any)["n"])
}

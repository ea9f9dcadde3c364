package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
)

// Fingerprint computes a stable hash of the resolved configuration. The build tool
// can use it as a cache key: two Sites with the same fingerprint build the same site.
// Order-significant lists (locales, presets, themes, navbar items) stay in order.
func (s *Site) Fingerprint() string {
	if s == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) { h.Write([]byte(strings.Join(parts, "="))); h.Write([]byte{0}) }
	section := func(name string, v any) {
		b, err := json.Marshal(v)
		if err != nil {
			// Every Site field marshals; keep the name so the hash still moves.
			b = []byte(err.Error())
		}
		w(name, string(b))
	}

	w("title", s.Title)
	w("tagline", s.Tagline)
	w("url", s.URL)
	w("base_url", s.BaseURL)
	w("organization", s.OrganizationName)
	w("project", s.ProjectName)
	w("deployment_branch", s.DeploymentBranch)
	w("favicon", s.Favicon)
	w("trailing_slash", strconv.FormatBool(s.TrailingSlash))
	w("on_broken_links", string(s.OnBrokenLinks))
	w("on_broken_markdown_links", string(s.OnBrokenMarkdownLinks))
	w("i18n.default_locale", s.I18n.DefaultLocale)
	w("i18n.locales", strings.Join(s.I18n.Locales, ","))
	section("i18n.locale_configs", s.I18n.LocaleConfigs)
	w("themes", strings.Join(s.Themes, ","))
	section("presets", s.Presets)
	section("theme_config", s.ThemeConfig)
	return hex.EncodeToString(h.Sum(nil))
}

package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// normalizeSite canonicalizes spellings in the raw literal before defaults are applied.
// Recognized enum values are case-folded and locale tags are put in BCP 47 canonical
// form, each change recorded as a warning. Unrecognized values are left untouched so
// that validation can reject them with the original spelling.
func normalizeSite(r *rawSite, res *Result) {
	trimSpace(&r.Title)
	trimSpace(&r.Tagline)
	trimSpace(&r.URL)
	trimSpace(&r.BaseURL)
	if r.URL.set && len(r.URL.value) > 1 && strings.HasSuffix(r.URL.value, "/") {
		trimmed := strings.TrimRight(r.URL.value, "/")
		res.warnChanged("url", r.URL.value, trimmed)
		r.URL.value = trimmed
	}

	normalizeEnum("onBrokenLinks", &r.OnBrokenLinks, brokenLinkPolicies, res)
	normalizeEnum("onBrokenMarkdownLinks", &r.OnBrokenMarkdownLinks, brokenLinkPolicies, res)
	r.Themes.values = trimStringSlice(r.Themes.values)

	if r.I18n != nil {
		normalizeI18n(r.I18n, res)
	}
	for i := range r.Presets {
		normalizePreset(fmt.Sprintf("presets[%d].options", i), &r.Presets[i].options, res)
	}
	normalizeThemeConfig(&r.ThemeConfig, res)
}

func normalizeI18n(r *rawI18n, res *Result) {
	trimSpace(&r.DefaultLocale)
	if tag, ok := canonicalLocale(r.DefaultLocale.value); ok && tag != r.DefaultLocale.value {
		res.warnChanged("i18n.defaultLocale", r.DefaultLocale.value, tag)
		r.DefaultLocale.value = tag
	}

	seen := make(map[string]bool, len(r.Locales.values))
	out := make([]string, 0, len(r.Locales.values))
	for i, l := range r.Locales.values {
		l = strings.TrimSpace(l)
		if tag, ok := canonicalLocale(l); ok && tag != l {
			res.warnChanged(fmt.Sprintf("i18n.locales[%d]", i), l, tag)
			l = tag
		}
		if seen[l] {
			res.Warnings = append(res.Warnings, fmt.Sprintf("dropped duplicate locale '%s' from i18n.locales", l))
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	if r.Locales.set {
		r.Locales.values = out
	}

	if len(r.LocaleConfigs) == 0 {
		return
	}
	configs := make(map[string]rawLocaleConfig, len(r.LocaleConfigs))
	from := make(map[string]string, len(r.LocaleConfigs))
	// On a collision the first key in byte order wins.
	for _, key := range slices.Sorted(maps.Keys(r.LocaleConfigs)) {
		lc := r.LocaleConfigs[key]
		written := key
		if tag, ok := canonicalLocale(key); ok && tag != key {
			res.warnChanged("i18n.localeConfigs key", key, tag)
			key = tag
		}
		if prev, dup := from[key]; dup {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"dropped i18n.localeConfigs entry '%s': locale '%s' is already configured by '%s'", written, key, prev))
			continue
		}
		from[key] = written
		normalizeEnum("i18n.localeConfigs."+key+".direction", &lc.Direction, directions, res)
		configs[key] = lc
	}
	r.LocaleConfigs = configs
}

func normalizePreset(path string, o *rawPresetOptions, res *Result) {
	o.Theme.CustomCSS.values = trimStringSlice(o.Theme.CustomCSS.values)
	normalizeEnum(path+".sitemap.changefreq", &o.Sitemap.ChangeFreq, changeFreqs, res)
	if o.Gtag != nil {
		trimSpace(&o.Gtag.TrackingID)
	}
}

func normalizeThemeConfig(t *rawThemeConfig, res *Result) {
	for i := range t.Navbar.Items {
		item := &t.Navbar.Items[i]
		normalizeEnum(fmt.Sprintf("themeConfig.navbar.items[%d].position", i), &item.Position, navPositions, res)
		trimSpace(&item.Type)
		item.Type.value = strings.ToLower(item.Type.value)
	}
	normalizeEnum("themeConfig.footer.style", &t.Footer.Style, footerStyles, res)
	t.Prism.AdditionalLanguages.values = trimStringSlice(t.Prism.AdditionalLanguages.values)
}

// canonicalLocale returns the canonical BCP 47 form of raw, or false when raw does not parse.
func canonicalLocale(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	return tag.String(), true
}

func normalizeEnum[T ~string](field string, r *rawString, set enumSet[T], res *Result) {
	if !r.set {
		return
	}
	v, ok := set.parse(r.value)
	if !ok || string(v) == r.value {
		return
	}
	res.warnChanged(field, r.value, string(v))
	r.value = string(v)
}

func trimSpace(r *rawString) {
	r.value = strings.TrimSpace(r.value)
}

// trimStringSlice removes empty entries (after trimming whitespace). Order is kept.
func trimStringSlice(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (r *Result) warnChanged(field string, from, to any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to))
}

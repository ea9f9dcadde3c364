package config

import (
	"fmt"
	"maps"
	"math"
	"net"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/language"
)

// checkRequired reports the first required field that is absent or blank.
func checkRequired(r *rawSite) error {
	for _, f := range []struct {
		name  string
		value rawString
	}{
		{"title", r.Title},
		{"tagline", r.Tagline},
		{"url", r.URL},
		{"baseUrl", r.BaseURL},
	} {
		if !f.value.set {
			return missing(f.name)
		}
		if strings.TrimSpace(f.value.value) == "" {
			return invalid(f.name, "must not be empty")
		}
	}
	if r.I18n == nil {
		return missing("i18n")
	}
	if !r.I18n.DefaultLocale.set || strings.TrimSpace(r.I18n.DefaultLocale.value) == "" {
		return missing("i18n.defaultLocale")
	}
	if !r.I18n.Locales.set {
		return missing("i18n.locales")
	}
	return nil
}

// ValidateSite checks the shape of a resolved Site. Paths and ids that the build
// tool resolves (favicon, editUrl, sidebarPath, docId targets) are only shape-checked.
func ValidateSite(s *Site) error {
	v := &siteValidator{site: s}
	for _, step := range []func() error{
		v.validateSite,
		v.validateI18n,
		v.validatePresets,
		v.validateNavbar,
		v.validateFooter,
		v.validateMetadata,
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

type siteValidator struct {
	site *Site
}

func (v *siteValidator) validateSite() error {
	if err := checkSiteURL("url", v.site.URL); err != nil {
		return err
	}
	if err := checkBaseURL("baseUrl", v.site.BaseURL); err != nil {
		return err
	}
	if !brokenLinkPolicies.contains(v.site.OnBrokenLinks) {
		return brokenLinkPolicies.invalid("onBrokenLinks", string(v.site.OnBrokenLinks))
	}
	if !brokenLinkPolicies.contains(v.site.OnBrokenMarkdownLinks) {
		return brokenLinkPolicies.invalid("onBrokenMarkdownLinks", string(v.site.OnBrokenMarkdownLinks))
	}
	for i, th := range v.site.Themes {
		if th == "" {
			return invalid(fmt.Sprintf("themes[%d]", i), "must not be empty")
		}
	}
	return nil
}

// checkSiteURL requires an absolute http(s) URL whose host is a valid domain name or IP.
func checkSiteURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return invalid(field, "not a parseable URL: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return invalid(field, "must be an absolute URL with scheme and host, got %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid(field, "scheme must be http or https, got %q", u.Scheme)
	}
	return checkHost(field, u.Hostname())
}

func checkHost(field, host string) error {
	if host == "" {
		return invalid(field, "host is empty")
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	if _, err := idna.Lookup.ToASCII(host); err != nil {
		return invalid(field, "invalid host %q: %v", host, err)
	}
	return nil
}

func checkBaseURL(field, raw string) error {
	if !strings.HasPrefix(raw, "/") || !strings.HasSuffix(raw, "/") {
		return invalid(field, "must start and end with '/', got %q", raw)
	}
	return nil
}

func (v *siteValidator) validateI18n() error {
	i := v.site.I18n
	if len(i.Locales) == 0 {
		return invalid("i18n.locales", "must list at least one locale")
	}
	declared := make(map[string]bool, len(i.Locales))
	for n, l := range i.Locales {
		field := fmt.Sprintf("i18n.locales[%d]", n)
		if l == "" {
			return invalid(field, "must not be empty")
		}
		if _, err := language.Parse(l); err != nil {
			return invalid(field, "%q is not a BCP 47 language tag", l)
		}
		declared[l] = true
	}
	if !declared[i.DefaultLocale] {
		return invalid("i18n.defaultLocale", "%q is not listed in i18n.locales %v", i.DefaultLocale, i.Locales)
	}
	for _, key := range slices.Sorted(maps.Keys(i.LocaleConfigs)) {
		lc := i.LocaleConfigs[key]
		field := "i18n.localeConfigs." + key
		if !declared[key] {
			return invalid(field, "configures locale %q which is not listed in i18n.locales", key)
		}
		if !directions.contains(lc.Direction) {
			return directions.invalid(field+".direction", string(lc.Direction))
		}
	}
	return nil
}

func (v *siteValidator) validatePresets() error {
	for n, p := range v.site.Presets {
		base := fmt.Sprintf("presets[%d]", n)
		if strings.TrimSpace(p.Name) == "" {
			return invalid(base+".name", "must not be empty")
		}
		if err := validatePresetOptions(base+".options", &p.Options); err != nil {
			return err
		}
	}
	return nil
}

func validatePresetOptions(base string, o *PresetOptions) error {
	if d := o.Docs; d != nil {
		if err := checkRoutePath(base+".docs.routeBasePath", d.RouteBasePath); err != nil {
			return err
		}
		if err := checkPlugins(base+".docs.beforeDefaultRemarkPlugins", d.BeforeDefaultRemarkPlugins); err != nil {
			return err
		}
		if err := checkPlugins(base+".docs.remarkPlugins", d.RemarkPlugins); err != nil {
			return err
		}
	}
	if b := o.Blog; b != nil {
		if err := checkRoutePath(base+".blog.routeBasePath", b.RouteBasePath); err != nil {
			return err
		}
		if b.PostsPerPage < 1 {
			return invalid(base+".blog.postsPerPage", "must be at least 1, got %d", b.PostsPerPage)
		}
	}
	for n, css := range o.Theme.CustomCSS {
		if css == "" {
			return invalid(fmt.Sprintf("%s.theme.customCss[%d]", base, n), "must not be empty")
		}
	}
	sm := o.Sitemap
	if !changeFreqs.contains(sm.ChangeFreq) {
		return changeFreqs.invalid(base+".sitemap.changefreq", string(sm.ChangeFreq))
	}
	if math.IsNaN(sm.Priority) || sm.Priority < 0 || sm.Priority > 1 {
		return invalid(base+".sitemap.priority", "must be between 0 and 1, got %v", sm.Priority)
	}
	if !strings.HasSuffix(sm.Filename, ".xml") || strings.Contains(sm.Filename, "/") {
		return invalid(base+".sitemap.filename", "must be a plain .xml file name, got %q", sm.Filename)
	}
	if o.Gtag != nil && o.Gtag.TrackingID == "" {
		return missing(base + ".gtag.trackingID")
	}
	return nil
}

// checkRoutePath rejects route prefixes that would escape the base URL.
func checkRoutePath(field, p string) error {
	if strings.Contains(p, "..") || strings.Contains(p, "://") {
		return invalid(field, "must be a path relative to baseUrl, got %q", p)
	}
	return nil
}

func checkPlugins(field string, refs []PluginRef) error {
	for n, r := range refs {
		if strings.TrimSpace(r.Name) == "" {
			return invalid(fmt.Sprintf("%s[%d].name", field, n), "must not be empty")
		}
	}
	return nil
}

func (v *siteValidator) validateNavbar() error {
	nb := v.site.ThemeConfig.Navbar
	if nb.Logo != nil && nb.Logo.Src == "" {
		return missing("themeConfig.navbar.logo.src")
	}
	for n, it := range nb.Items {
		base := fmt.Sprintf("themeConfig.navbar.items[%d]", n)
		if !navPositions.contains(it.Position) {
			return navPositions.invalid(base+".position", string(it.Position))
		}
		switch it.Kind {
		case NavItemDoc:
			if it.DocID == "" {
				return missing(base + ".docId")
			}
		case NavItemLink:
			if err := checkExternalLink(base+".href", it.Href); err != nil {
				return err
			}
		case NavItemPage:
			if !strings.HasPrefix(it.To, "/") {
				return invalid(base+".to", "must be a site path starting with '/', got %q", it.To)
			}
		case "":
			return invalid(base, "must set one of href, to, or type: doc with docId")
		default:
			return invalid(base+".type", "unsupported navbar item type %q (allowed: doc|default)", it.Kind)
		}
		if it.Label == "" && it.Kind != NavItemDoc {
			return missing(base + ".label")
		}
	}
	return nil
}

func checkExternalLink(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return invalid(field, "not a parseable URL: %v", err)
	}
	if u.Scheme == "" {
		return invalid(field, "must be an absolute URL, got %q", raw)
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return checkHost(field, u.Hostname())
	}
	return nil
}

func (v *siteValidator) validateFooter() error {
	f := v.site.ThemeConfig.Footer
	if !footerStyles.contains(f.Style) {
		return footerStyles.invalid("themeConfig.footer.style", string(f.Style))
	}
	for g, group := range f.Links {
		for n, l := range group.Items {
			base := fmt.Sprintf("themeConfig.footer.links[%d].items[%d]", g, n)
			if l.Label == "" {
				return missing(base + ".label")
			}
			switch {
			case l.To != "" && l.Href != "":
				return invalid(base, "set either to or href, not both")
			case l.Href != "":
				if err := checkExternalLink(base+".href", l.Href); err != nil {
					return err
				}
			case l.To == "":
				return invalid(base, "must set to or href")
			}
		}
	}
	return nil
}

func (v *siteValidator) validateMetadata() error {
	for n, m := range v.site.ThemeConfig.Metadata {
		base := fmt.Sprintf("themeConfig.metadata[%d]", n)
		if (m.Name == "") == (m.Property == "") {
			return invalid(base, "must set exactly one of name or property")
		}
		if m.Content == "" {
			return missing(base + ".content")
		}
	}
	return nil
}

// advisories reports settings that are legal but probably unintended.
func advisories(s *Site) []string {
	var out []string
	if (s.OrganizationName == "") != (s.ProjectName == "") {
		out = append(out, "organizationName and projectName should be set together for deployment")
	}
	if u, err := url.Parse(s.URL); err == nil && u.Path != "" && u.Path != "/" {
		out = append(out, fmt.Sprintf("url %q contains a path; put path prefixes in baseUrl", s.URL))
	}
	return out
}

package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// The raw* types are the decoding targets for the literal. They record whether a
// key was present so defaults can tell "absent" from "zero", and they reject
// wrongly-typed values (scalars, lists and objects alike) with an error anchored
// at the offending node.

// nodeError is a decode failure tied to a position in the literal.
type nodeError struct {
	node   *yaml.Node
	reason string
}

func (e *nodeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.node.Line, e.reason)
}

func expect(n *yaml.Node, tags ...string) error {
	if n.Kind == yaml.ScalarNode {
		for _, t := range tags {
			if n.ShortTag() == t {
				return nil
			}
		}
	}
	return &nodeError{node: n, reason: fmt.Sprintf("expected %s, got %s", describeTags(tags), describeNode(n))}
}

func describeTags(tags []string) string {
	switch tags[0] {
	case "!!str":
		return "a string"
	case "!!bool":
		return "a boolean"
	case "!!int":
		if len(tags) > 1 {
			return "a number"
		}
		return "an integer"
	}
	return tags[0]
}

func describeNode(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "an object"
	case yaml.SequenceNode:
		return "a list"
	}
	return fmt.Sprintf("%s %q", n.ShortTag(), n.Value)
}

type rawString struct {
	set   bool
	value string
}

func (r *rawString) UnmarshalYAML(n *yaml.Node) error {
	if err := expect(n, "!!str"); err != nil {
		return err
	}
	r.set, r.value = true, n.Value
	return nil
}

func (r rawString) or(def string) string {
	if r.set {
		return r.value
	}
	return def
}

type rawBool struct {
	set   bool
	value bool
}

func (r *rawBool) UnmarshalYAML(n *yaml.Node) error {
	if err := expect(n, "!!bool"); err != nil {
		return err
	}
	r.set = true
	return n.Decode(&r.value)
}

func (r rawBool) or(def bool) bool {
	if r.set {
		return r.value
	}
	return def
}

type rawFloat struct {
	set   bool
	value float64
}

func (r *rawFloat) UnmarshalYAML(n *yaml.Node) error {
	if err := expect(n, "!!int", "!!float"); err != nil {
		return err
	}
	r.set = true
	return n.Decode(&r.value)
}

type rawInt struct {
	set   bool
	value int
}

func (r *rawInt) UnmarshalYAML(n *yaml.Node) error {
	if err := expect(n, "!!int"); err != nil {
		return err
	}
	r.set = true
	return n.Decode(&r.value)
}

// stringList accepts either a single string or a list of strings.
type stringList struct {
	set    bool
	values []string
}

func (l *stringList) UnmarshalYAML(n *yaml.Node) error {
	l.set = true
	if n.Kind == yaml.ScalarNode {
		if err := expect(n, "!!str"); err != nil {
			return err
		}
		l.values = []string{n.Value}
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		return &nodeError{node: n, reason: "expected a string or a list of strings, got " + describeNode(n)}
	}
	l.values = make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if err := expect(c, "!!str"); err != nil {
			return err
		}
		l.values = append(l.values, c.Value)
	}
	return nil
}

// section is a plugin options block that may also be written as `false` to
// switch the plugin off, or `true` to keep its defaults.
type section[T any] struct {
	set      bool
	disabled bool
	value    T
}

func (s *section[T]) UnmarshalYAML(n *yaml.Node) error {
	s.set = true
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!bool" {
		var on bool
		if err := n.Decode(&on); err != nil {
			return err
		}
		s.disabled = !on
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return &nodeError{node: n, reason: "expected an object or false, got " + describeNode(n)}
	}
	return n.Decode(&s.value)
}

// seq is a list field. Anything other than a sequence fails at its own node, so the
// error carries the field path even when the whole document sits on one line.
type seq[T any] []T

func (s *seq[T]) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return &nodeError{node: n, reason: "expected a list, got " + describeNode(n)}
	}
	return n.Decode((*[]T)(s))
}

// objectMap is a map field keyed by name.
type objectMap[T any] map[string]T

func (m *objectMap[T]) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return &nodeError{node: n, reason: "expected an object, got " + describeNode(n)}
	}
	return n.Decode((*map[string]T)(m))
}

// decodeObject decodes a mapping node into out, which must be a method-free alias
// of the raw type so decoding does not recurse into its UnmarshalYAML.
func decodeObject[T any](n *yaml.Node, out *T) error {
	if n.Kind != yaml.MappingNode {
		return &nodeError{node: n, reason: "expected an object, got " + describeNode(n)}
	}
	return n.Decode(out)
}

// tuple decodes the `name` or `[name, options]` form shared by presets and plugins.
func tuple(n *yaml.Node, options func(*yaml.Node) error) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if err := expect(n, "!!str"); err != nil {
			return "", err
		}
		return n.Value, nil
	case yaml.SequenceNode:
		if len(n.Content) == 0 || len(n.Content) > 2 {
			return "", &nodeError{node: n, reason: fmt.Sprintf("expected [name] or [name, options], got %d elements", len(n.Content))}
		}
		if err := expect(n.Content[0], "!!str"); err != nil {
			return "", err
		}
		if len(n.Content) == 2 {
			opts := n.Content[1]
			if opts.Kind != yaml.MappingNode {
				return "", &nodeError{node: opts, reason: "expected an options object, got " + describeNode(opts)}
			}
			if err := options(opts); err != nil {
				return "", err
			}
		}
		return n.Content[0].Value, nil
	}
	return "", &nodeError{node: n, reason: "expected a name or [name, options], got " + describeNode(n)}
}

type rawPreset struct {
	name    string
	options rawPresetOptions
}

func (p *rawPreset) UnmarshalYAML(n *yaml.Node) error {
	name, err := tuple(n, func(o *yaml.Node) error { return o.Decode(&p.options) })
	p.name = name
	return err
}

type rawPluginRef struct {
	name    string
	options map[string]any
}

func (p *rawPluginRef) UnmarshalYAML(n *yaml.Node) error {
	name, err := tuple(n, func(o *yaml.Node) error { return o.Decode(&p.options) })
	p.name = name
	return err
}

type rawSite struct {
	Title            rawString `yaml:"title"`
	Tagline          rawString `yaml:"tagline"`
	URL              rawString `yaml:"url"`
	BaseURL          rawString `yaml:"baseUrl"`
	OrganizationName rawString `yaml:"organizationName"`
	ProjectName      rawString `yaml:"projectName"`
	DeploymentBranch rawString `yaml:"deploymentBranch"`
	Favicon          rawString `yaml:"favicon"`
	TrailingSlash    rawBool   `yaml:"trailingSlash"`

	OnBrokenLinks         rawString `yaml:"onBrokenLinks"`
	OnBrokenMarkdownLinks rawString `yaml:"onBrokenMarkdownLinks"`

	I18n        *rawI18n       `yaml:"i18n"`
	Themes      stringList     `yaml:"themes"`
	Presets     seq[rawPreset] `yaml:"presets"`
	ThemeConfig rawThemeConfig `yaml:"themeConfig"`
}

type rawI18n struct {
	DefaultLocale rawString                  `yaml:"defaultLocale"`
	Locales       stringList                 `yaml:"locales"`
	LocaleConfigs objectMap[rawLocaleConfig] `yaml:"localeConfigs"`
}

type rawLocaleConfig struct {
	Label     rawString `yaml:"label"`
	Direction rawString `yaml:"direction"`
	HTMLLang  rawString `yaml:"htmlLang"`
}

type rawPresetOptions struct {
	Docs    section[rawDocs] `yaml:"docs"`
	Blog    section[rawBlog] `yaml:"blog"`
	Theme   rawTheme         `yaml:"theme"`
	Sitemap rawSitemap       `yaml:"sitemap"`
	Gtag    *rawGtag         `yaml:"gtag"`
}

type rawDocs struct {
	Path                       rawString         `yaml:"path"`
	RouteBasePath              rawString         `yaml:"routeBasePath"`
	SidebarPath                rawString         `yaml:"sidebarPath"`
	EditURL                    rawString         `yaml:"editUrl"`
	ShowLastUpdateTime         rawBool           `yaml:"showLastUpdateTime"`
	BeforeDefaultRemarkPlugins seq[rawPluginRef] `yaml:"beforeDefaultRemarkPlugins"`
	RemarkPlugins              seq[rawPluginRef] `yaml:"remarkPlugins"`
}

type rawBlog struct {
	Path            rawString `yaml:"path"`
	RouteBasePath   rawString `yaml:"routeBasePath"`
	EditURL         rawString `yaml:"editUrl"`
	ShowReadingTime rawBool   `yaml:"showReadingTime"`
	PostsPerPage    rawInt    `yaml:"postsPerPage"`
}

type rawTheme struct {
	CustomCSS stringList `yaml:"customCss"`
}

type rawSitemap struct {
	ChangeFreq rawString `yaml:"changefreq"`
	Priority   rawFloat  `yaml:"priority"`
	Filename   rawString `yaml:"filename"`
}

type rawGtag struct {
	TrackingID  rawString `yaml:"trackingID"`
	AnonymizeIP rawBool   `yaml:"anonymizeIP"`
}

type rawThemeConfig struct {
	Metadata seq[rawMetaTag] `yaml:"metadata"`
	Navbar   rawNavbar       `yaml:"navbar"`
	Footer   rawFooter       `yaml:"footer"`
	Prism    rawPrism        `yaml:"prism"`
}

type rawMetaTag struct {
	Name     rawString `yaml:"name"`
	Property rawString `yaml:"property"`
	Content  rawString `yaml:"content"`
}

type rawNavbar struct {
	Title rawString       `yaml:"title"`
	Logo  *rawLogo        `yaml:"logo"`
	Items seq[rawNavItem] `yaml:"items"`
}

type rawLogo struct {
	Alt rawString `yaml:"alt"`
	Src rawString `yaml:"src"`
}

type rawNavItem struct {
	Type     rawString `yaml:"type"`
	DocID    rawString `yaml:"docId"`
	Label    rawString `yaml:"label"`
	Position rawString `yaml:"position"`
	Href     rawString `yaml:"href"`
	To       rawString `yaml:"to"`
}

type rawFooter struct {
	Style     rawString           `yaml:"style"`
	Links     seq[rawFooterGroup] `yaml:"links"`
	Copyright rawString           `yaml:"copyright"`
}

type rawFooterGroup struct {
	Title rawString          `yaml:"title"`
	Items seq[rawFooterLink] `yaml:"items"`
}

type rawFooterLink struct {
	Label rawString `yaml:"label"`
	To    rawString `yaml:"to"`
	Href  rawString `yaml:"href"`
}

type rawPrism struct {
	Theme               rawString  `yaml:"theme"`
	DarkTheme           rawString  `yaml:"darkTheme"`
	AdditionalLanguages stringList `yaml:"additionalLanguages"`
}

func (r *rawI18n) UnmarshalYAML(n *yaml.Node) error {
	type plain rawI18n
	return decodeObject(n, (*plain)(r))
}

func (r *rawLocaleConfig) UnmarshalYAML(n *yaml.Node) error {
	type plain rawLocaleConfig
	return decodeObject(n, (*plain)(r))
}

func (r *rawDocs) UnmarshalYAML(n *yaml.Node) error {
	type plain rawDocs
	return decodeObject(n, (*plain)(r))
}

func (r *rawBlog) UnmarshalYAML(n *yaml.Node) error {
	type plain rawBlog
	return decodeObject(n, (*plain)(r))
}

func (r *rawTheme) UnmarshalYAML(n *yaml.Node) error {
	type plain rawTheme
	return decodeObject(n, (*plain)(r))
}

func (r *rawSitemap) UnmarshalYAML(n *yaml.Node) error {
	type plain rawSitemap
	return decodeObject(n, (*plain)(r))
}

func (r *rawGtag) UnmarshalYAML(n *yaml.Node) error {
	type plain rawGtag
	return decodeObject(n, (*plain)(r))
}

func (r *rawThemeConfig) UnmarshalYAML(n *yaml.Node) error {
	type plain rawThemeConfig
	return decodeObject(n, (*plain)(r))
}

func (r *rawMetaTag) UnmarshalYAML(n *yaml.Node) error {
	type plain rawMetaTag
	return decodeObject(n, (*plain)(r))
}

func (r *rawNavbar) UnmarshalYAML(n *yaml.Node) error {
	type plain rawNavbar
	return decodeObject(n, (*plain)(r))
}

func (r *rawLogo) UnmarshalYAML(n *yaml.Node) error {
	type plain rawLogo
	return decodeObject(n, (*plain)(r))
}

func (r *rawNavItem) UnmarshalYAML(n *yaml.Node) error {
	type plain rawNavItem
	return decodeObject(n, (*plain)(r))
}

func (r *rawFooter) UnmarshalYAML(n *yaml.Node) error {
	type plain rawFooter
	return decodeObject(n, (*plain)(r))
}

func (r *rawFooterGroup) UnmarshalYAML(n *yaml.Node) error {
	type plain rawFooterGroup
	return decodeObject(n, (*plain)(r))
}

func (r *rawFooterLink) UnmarshalYAML(n *yaml.Node) error {
	type plain rawFooterLink
	return decodeObject(n, (*plain)(r))
}

func (r *rawPrism) UnmarshalYAML(n *yaml.Node) error {
	type plain rawPrism
	return decodeObject(n, (*plain)(r))
}

package config

import (
	"sort"
	"strings"
)

// enumSet recognizes the allowed spellings of a string enumeration.
// Matching is case-insensitive after trimming; the canonical spelling is returned.
type enumSet[T ~string] struct {
	name   string
	values map[string]T
	keys   []string
}

func newEnumSet[T ~string](name string, values ...T) enumSet[T] {
	s := enumSet[T]{name: name, values: make(map[string]T, len(values))}
	for _, v := range values {
		k := strings.ToLower(string(v))
		s.values[k] = v
		s.keys = append(s.keys, string(v))
	}
	sort.Strings(s.keys)
	return s
}

func (s enumSet[T]) parse(raw string) (T, bool) {
	v, ok := s.values[strings.ToLower(strings.TrimSpace(raw))]
	return v, ok
}

func (s enumSet[T]) contains(v T) bool {
	got, ok := s.values[strings.ToLower(string(v))]
	return ok && got == v
}

func (s enumSet[T]) allowed() string {
	return strings.Join(s.keys, "|")
}

func (s enumSet[T]) invalid(field, raw string) *ValidationError {
	return invalid(field, "unknown %s %q (allowed: %s)", s.name, raw, s.allowed())
}

// BrokenLinkPolicy selects what the build does when it finds a dead link.
type BrokenLinkPolicy string

const (
	BrokenLinksIgnore BrokenLinkPolicy = "ignore"
	BrokenLinksWarn   BrokenLinkPolicy = "warn"
	BrokenLinksThrow  BrokenLinkPolicy = "throw"
)

var brokenLinkPolicies = newEnumSet("broken link policy", BrokenLinksIgnore, BrokenLinksWarn, BrokenLinksThrow)

// ParseBrokenLinkPolicy returns the canonical policy for raw.
func ParseBrokenLinkPolicy(raw string) (BrokenLinkPolicy, bool) {
	return brokenLinkPolicies.parse(raw)
}

// NavItemPosition places a navbar item on one side of the bar.
type NavItemPosition string

const (
	PositionLeft  NavItemPosition = "left"
	PositionRight NavItemPosition = "right"
)

var navPositions = newEnumSet("navbar position", PositionLeft, PositionRight)

// FooterStyle is the footer color scheme.
type FooterStyle string

const (
	FooterLight FooterStyle = "light"
	FooterDark  FooterStyle = "dark"
)

var footerStyles = newEnumSet("footer style", FooterLight, FooterDark)

// ChangeFreq is the sitemap change frequency hint.
type ChangeFreq string

const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

var changeFreqs = newEnumSet("sitemap changefreq",
	ChangeFreqAlways, ChangeFreqHourly, ChangeFreqDaily, ChangeFreqWeekly,
	ChangeFreqMonthly, ChangeFreqYearly, ChangeFreqNever)

// TextDirection is the writing direction of a locale.
type TextDirection string

const (
	DirectionLTR TextDirection = "ltr"
	DirectionRTL TextDirection = "rtl"
)

var directions = newEnumSet("text direction", DirectionLTR, DirectionRTL)

// NavItemKind tags the navbar item variant.
type NavItemKind string

const (
	NavItemDoc  NavItemKind = "doc"  // links to a documentation page by id
	NavItemLink NavItemKind = "link" // links to an external URL
	NavItemPage NavItemKind = "page" // links to a site-internal path
)

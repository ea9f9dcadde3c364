package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable that can override the literal.
const EnvPrefix = "DOCSITE_"

// Env looks up environment values.
type Env interface {
	Lookup(key string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

func (OSEnv) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// MapEnv is an in-memory environment.
type MapEnv map[string]string

func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Layered consults each Env in order and returns the first hit.
type Layered []Env

func (l Layered) Lookup(key string) (string, bool) {
	for _, e := range l {
		if v, ok := e.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// LoadDotEnv reads KEY=VALUE files. Missing files are skipped; when several
// files define a key the earlier file wins. The process environment is not touched.
func LoadDotEnv(paths ...string) (MapEnv, error) {
	out := MapEnv{}
	for _, p := range paths {
		vals, err := godotenv.Read(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", p, err)
		}
		for k, v := range vals {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out, nil
}

type envOverride struct {
	key   string
	apply func(s *Site, value string) error
}

var envOverrides = []envOverride{
	{"URL", func(s *Site, v string) error {
		v = strings.TrimRight(strings.TrimSpace(v), "/")
		if err := checkSiteURL("url", v); err != nil {
			return err
		}
		s.URL = v
		return nil
	}},
	{"BASE_URL", func(s *Site, v string) error {
		if err := checkBaseURL("baseUrl", v); err != nil {
			return err
		}
		s.BaseURL = v
		return nil
	}},
	{"TRAILING_SLASH", func(s *Site, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return invalid("trailingSlash", "expected a boolean, got %q", v)
		}
		s.TrailingSlash = b
		return nil
	}},
	{"ON_BROKEN_LINKS", func(s *Site, v string) error {
		p, ok := brokenLinkPolicies.parse(v)
		if !ok {
			return brokenLinkPolicies.invalid("onBrokenLinks", v)
		}
		s.OnBrokenLinks = p
		return nil
	}},
	{"ON_BROKEN_MARKDOWN_LINKS", func(s *Site, v string) error {
		p, ok := brokenLinkPolicies.parse(v)
		if !ok {
			return brokenLinkPolicies.invalid("onBrokenMarkdownLinks", v)
		}
		s.OnBrokenMarkdownLinks = p
		return nil
	}},
	{"GTAG_TRACKING_ID", func(s *Site, v string) error {
		base, o, err := primaryPreset(s, "gtag.trackingID")
		if err != nil {
			return err
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return invalid(base+".gtag.trackingID", "must not be empty")
		}
		if o.Gtag == nil {
			o.Gtag = &GtagOptions{}
		}
		o.Gtag.TrackingID = v
		return nil
	}},
	{"GTAG_ANONYMIZE_IP", func(s *Site, v string) error {
		base, o, err := primaryPreset(s, "gtag.anonymizeIP")
		if err != nil {
			return err
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return invalid(base+".gtag.anonymizeIP", "expected a boolean, got %q", v)
		}
		if o.Gtag == nil {
			return invalid(base+".gtag", "no gtag section to configure; set %sGTAG_TRACKING_ID", EnvPrefix)
		}
		o.Gtag.AnonymizeIP = b
		return nil
	}},
	{"DOCS_EDIT_URL", func(s *Site, v string) error {
		base, o, err := primaryPreset(s, "docs.editUrl")
		if err != nil {
			return err
		}
		if o.Docs == nil {
			return invalid(base+".docs", "docs are disabled in the primary preset")
		}
		o.Docs.EditURL = v
		return nil
	}},
	{"BLOG_EDIT_URL", func(s *Site, v string) error {
		base, o, err := primaryPreset(s, "blog.editUrl")
		if err != nil {
			return err
		}
		if o.Blog == nil {
			return invalid(base+".blog", "blog is disabled in the primary preset")
		}
		o.Blog.EditURL = v
		return nil
	}},
}

// PrimaryPresetName is the preset environment overrides apply to when present.
const PrimaryPresetName = "classic"

// primaryPreset returns the options of the "classic" preset, or of the first preset,
// together with their dotted path in the literal.
func primaryPreset(s *Site, field string) (string, *PresetOptions, error) {
	if len(s.Presets) == 0 {
		return "", nil, invalid("presets", "cannot apply %s: no preset is configured", field)
	}
	i := slices.IndexFunc(s.Presets, func(p Preset) bool { return p.Name == PrimaryPresetName })
	if i < 0 {
		i = 0
	}
	return fmt.Sprintf("presets[%d].options", i), &s.Presets[i].Options, nil
}

// ResolveEnvironmentOverrides returns a copy of site with DOCSITE_* values from env
// applied. site itself is never modified. Each overridden value is validated the
// same way as the literal value it replaces.
func ResolveEnvironmentOverrides(site *Site, env Env) (*Site, error) {
	if site == nil {
		return nil, invalid("", "configuration is empty")
	}
	out := site.Clone()
	if env == nil {
		return out, nil
	}
	for _, o := range envOverrides {
		key := EnvPrefix + o.key
		v, ok := env.Lookup(key)
		if !ok {
			continue
		}
		if err := o.apply(out, v); err != nil {
			if ve, ok := AsValidationError(err); ok {
				ve.Source = "env " + key
			}
			return nil, err
		}
	}
	return out, nil
}

// OverrideKeys lists the environment variables ResolveEnvironmentOverrides reads.
func OverrideKeys() []string {
	keys := make([]string, 0, len(envOverrides))
	for _, o := range envOverrides {
		keys = append(keys, EnvPrefix+o.key)
	}
	return keys
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Result is a decoded Site together with the non-fatal findings of normalization.
type Result struct {
	Site     *Site
	Warnings []string
}

// Load validates a literal configuration (the in-memory equivalent of the
// site's config file) and returns the resolved Site. Load is pure: the same
// literal always yields an equal Site.
func Load(raw map[string]any) (*Site, error) {
	if raw == nil {
		return nil, invalid("", "configuration is empty")
	}
	data, err := marshalLiteral(raw)
	if err != nil {
		return nil, err
	}
	res, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return res.Site, nil
}

// marshalLiteral renders raw as YAML. yaml.Marshal panics on values it cannot
// represent (channels, functions); those become a ValidationError.
func marshalLiteral(raw map[string]any) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, invalid("", "literal cannot be represented: %v", r)
		}
	}()
	data, err = yaml.Marshal(raw)
	if err != nil {
		return nil, invalid("", "literal cannot be represented: %v", err)
	}
	return data, nil
}

// Decode parses a YAML or JSON document and runs the normalize, default and validate passes.
func Decode(data []byte) (*Result, error) {
	root, err := parseLiteral(data)
	if err != nil {
		return nil, err
	}
	idx := indexPaths(root)

	var raw rawSite
	if err := root.Decode(&raw); err != nil {
		return nil, idx.translate(err)
	}

	res := &Result{Warnings: unknownTopLevelKeys(root)}
	if err := checkRequired(&raw); err != nil {
		return nil, err
	}
	normalizeSite(&raw, res)

	site := &Site{}
	for _, applier := range defaultAppliers() {
		applier.ApplyDefaults(&raw, site)
	}
	if err := ValidateSite(site); err != nil {
		return nil, err
	}
	res.Warnings = append(res.Warnings, advisories(site)...)
	res.Site = site
	return res, nil
}

// LoadFile reads and decodes the configuration at path. Normalization warnings
// are logged rather than returned.
func LoadFile(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration %s: %w", path, err)
	}
	res, err := Decode(data)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		slog.Warn("Configuration normalized", logfields.Path(path), logfields.Warning(w))
	}
	return res.Site, nil
}

func parseLiteral(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, invalid("", "configuration is empty")
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, invalid("", "malformed configuration: %v", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, invalid("", "configuration is empty")
	}
	if top := doc.Content[0]; top.Kind != yaml.MappingNode {
		return nil, invalid("", "configuration must be an object, got %s", describeNode(top))
	}
	return &doc, nil
}

// Keys under which lists hold `[name, options]` tuples.
var tupleLists = map[string]bool{
	"presets":                    true,
	"beforeDefaultRemarkPlugins": true,
	"remarkPlugins":              true,
}

type lineEntry struct {
	path string
	tag  string
}

// pathIndex maps literal nodes back to dotted field paths for error reporting.
type pathIndex struct {
	byNode map[*yaml.Node]string
	byLine map[int][]lineEntry
}

func indexPaths(doc *yaml.Node) *pathIndex {
	idx := &pathIndex{byNode: map[*yaml.Node]string{}, byLine: map[int][]lineEntry{}}
	var walk func(n *yaml.Node, path string, tuples bool)
	walk = func(n *yaml.Node, path string, tuples bool) {
		idx.byNode[n] = path
		idx.byLine[n.Line] = append(idx.byLine[n.Line], lineEntry{path: path, tag: n.ShortTag()})
		switch n.Kind {
		case yaml.MappingNode:
			for i := 0; i+1 < len(n.Content); i += 2 {
				key := n.Content[i].Value
				walk(n.Content[i+1], joinPath(path, key), tupleLists[key])
			}
		case yaml.SequenceNode:
			for i, c := range n.Content {
				item := fmt.Sprintf("%s[%d]", path, i)
				if !tuples || c.Kind != yaml.SequenceNode {
					walk(c, item, false)
					continue
				}
				idx.byNode[c] = item
				for j, e := range c.Content {
					switch j {
					case 0:
						walk(e, item+".name", false)
					case 1:
						walk(e, item+".options", false)
					default:
						walk(e, fmt.Sprintf("%s[%d]", item, j), false)
					}
				}
			}
		}
	}
	walk(doc.Content[0], "", false)
	return idx
}

var typeErrorLine = regexp.MustCompile(`^line (\d+): (cannot unmarshal (!!\w+).*)$`)

// translate turns a yaml decode failure into a ValidationError with a field path.
func (idx *pathIndex) translate(err error) error {
	var ne *nodeError
	if errors.As(err, &ne) {
		return &ValidationError{Field: idx.byNode[ne.node], Reason: ne.reason}
	}
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		m := typeErrorLine.FindStringSubmatch(te.Errors[0])
		if m == nil {
			return invalid("", "%s", te.Errors[0])
		}
		line, _ := strconv.Atoi(m[1])
		for _, e := range idx.byLine[line] {
			if e.tag == m[3] {
				return &ValidationError{Field: e.path, Reason: m[2]}
			}
		}
		return invalid("", "line %d: %s", line, m[2])
	}
	return invalid("", "malformed configuration: %v", err)
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func unknownTopLevelKeys(doc *yaml.Node) []string {
	known := map[string]bool{}
	t := reflect.TypeOf(rawSite{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		known[name] = true
	}
	var out []string
	top := doc.Content[0]
	for i := 0; i+1 < len(top.Content); i += 2 {
		if key := top.Content[i].Value; !known[key] {
			out = append(out, fmt.Sprintf("unknown field '%s' ignored", key))
		}
	}
	return out
}

// Package yaml loads site configuration from mkdocs.yml files.
//
// Parsing works on the yaml.v3 node tree rather than decoding into structs,
// so mapping order is preserved and scalars carrying application tags such
// as !!python/name or !ENV load as plain strings instead of failing.
package yaml

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/llmstxt"
	"gopkg.in/yaml.v3"
)

// PluginName is the key of the llmstxt plugin block.
const PluginName = "llmstxt"

// LoadConfig reads and parses the mkdocs.yml file at path.
// Returns ENOTFOUND if the file does not exist.
func LoadConfig(path string) (*llmstxt.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "config file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig builds a Config from mkdocs.yml content.
// Returns ECONFIG if the content is not a mapping or a known key has the
// wrong shape.
func ParseConfig(data []byte) (*llmstxt.Config, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, llmstxt.Errorf(llmstxt.ECONFIG, "config file must be a mapping")
	}

	cfg := llmstxt.NewConfig()
	if n := lookup(root, "site_name"); n != nil && !isNull(n) {
		if cfg.SiteName, err = scalar(n, "site_name"); err != nil {
			return nil, err
		}
	}
	if n := lookup(root, "site_description"); n != nil {
		if cfg.SiteDescription, err = scalar(n, "site_description"); err != nil {
			return nil, err
		}
	}
	if n := lookup(root, "site_url"); n != nil {
		url, err := scalar(n, "site_url")
		if err != nil {
			return nil, err
		}
		cfg.SiteURL = strings.TrimRight(url, "/")
	}
	if n := lookup(root, "use_directory_urls"); n != nil && !isNull(n) {
		var directory bool
		if err := n.Decode(&directory); err != nil {
			return nil, llmstxt.Errorf(llmstxt.ECONFIG, "use_directory_urls must be a boolean (line %d)", n.Line)
		}
		if !directory {
			cfg.URLStyle = llmstxt.URLStyleFlat
		}
	}
	if n := lookup(root, "nav"); n != nil && !isNull(n) {
		if cfg.Nav, err = parseNav(n); err != nil {
			return nil, err
		}
	}

	plugin, err := findPlugin(lookup(root, "plugins"))
	if err != nil {
		return nil, err
	}
	if plugin != nil {
		if err := parsePlugin(plugin, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func parseDocument(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, llmstxt.Errorf(llmstxt.ECONFIG, "invalid YAML: %v", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	return resolve(doc.Content[0]), nil
}

// findPlugin returns the llmstxt plugin block from the plugins value, which
// is either a list of names and single-key mappings or a mapping keyed by
// plugin name. A plugin listed without options yields an empty mapping.
func findPlugin(plugins *yaml.Node) (*yaml.Node, error) {
	if plugins == nil || isNull(plugins) {
		return nil, nil
	}
	switch plugins.Kind {
	case yaml.MappingNode:
		if n := lookup(plugins, PluginName); n != nil {
			return options(n), nil
		}
		return nil, nil
	case yaml.SequenceNode:
		for _, item := range plugins.Content {
			item = resolve(item)
			switch item.Kind {
			case yaml.ScalarNode:
				if item.Value == PluginName {
					return options(nil), nil
				}
			case yaml.MappingNode:
				if n := lookup(item, PluginName); n != nil {
					return options(n), nil
				}
			}
		}
		return nil, nil
	default:
		return nil, llmstxt.Errorf(llmstxt.ECONFIG, "plugins must be a list or mapping (line %d)", plugins.Line)
	}
}

func options(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.MappingNode {
		return n
	}
	return &yaml.Node{Kind: yaml.MappingNode}
}

func parsePlugin(plugin *yaml.Node, cfg *llmstxt.Config) error {
	var err error
	if n := lookup(plugin, "markdown_description"); n != nil {
		if cfg.MarkdownDescription, err = scalar(n, "markdown_description"); err != nil {
			return err
		}
	}
	if n := lookup(plugin, "full_output"); n != nil && !isNull(n) {
		if cfg.FullOutput, err = scalar(n, "full_output"); err != nil {
			return err
		}
	}
	if n := lookup(plugin, "content_selector"); n != nil {
		if cfg.ContentSelector, err = scalar(n, "content_selector"); err != nil {
			return err
		}
	}
	if n := lookup(plugin, "sections"); n != nil && !isNull(n) {
		if cfg.Sections, err = parseSections(n); err != nil {
			return err
		}
	}
	return nil
}

// parseSections reads the sections mapping in declaration order.
func parseSections(n *yaml.Node) ([]llmstxt.Section, error) {
	if n.Kind != yaml.MappingNode {
		return nil, llmstxt.Errorf(llmstxt.ECONFIG, "llmstxt 'sections' must be a mapping (line %d)", n.Line)
	}

	sections := make([]llmstxt.Section, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := resolve(n.Content[i]), resolve(n.Content[i+1])
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, llmstxt.Errorf(llmstxt.ECONFIG, "llmstxt 'sections' keys must be strings (line %d)", key.Line)
		}
		name := key.Value
		if value.Kind != yaml.SequenceNode {
			return nil, llmstxt.Errorf(llmstxt.ECONFIG, "llmstxt 'sections.%s' must be a list of strings (line %d)", name, value.Line)
		}

		pages := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			item = resolve(item)
			if item.Kind != yaml.ScalarNode || isNull(item) {
				return nil, llmstxt.Errorf(llmstxt.ECONFIG, "llmstxt 'sections.%s' entries must be strings (line %d)", name, item.Line)
			}
			pages = append(pages, item.Value)
		}
		sections = append(sections, llmstxt.Section{Name: name, Pages: pages})
	}
	return sections, nil
}

// parseNav converts the nav sequence. Entries are either a bare page path,
// a single-key mapping from title to page path, or a single-key mapping
// from group title to a nested nav sequence.
func parseNav(n *yaml.Node) ([]llmstxt.NavNode, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, llmstxt.Errorf(llmstxt.ECONFIG, "nav must be a list (line %d)", n.Line)
	}

	var nodes []llmstxt.NavNode
	for _, item := range n.Content {
		item = resolve(item)
		switch item.Kind {
		case yaml.ScalarNode:
			if isNull(item) || item.Value == "" {
				return nil, llmstxt.Errorf(llmstxt.ECONFIG, "empty nav entry (line %d)", item.Line)
			}
			nodes = append(nodes, llmstxt.PageRef("", item.Value))
		case yaml.MappingNode:
			for i := 0; i+1 < len(item.Content); i += 2 {
				key, value := resolve(item.Content[i]), resolve(item.Content[i+1])
				node, err := navEntry(key.Value, value)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, node)
			}
		default:
			return nil, llmstxt.Errorf(llmstxt.ECONFIG, "invalid nav entry (line %d)", item.Line)
		}
	}
	return nodes, nil
}

func navEntry(title string, value *yaml.Node) (llmstxt.NavNode, error) {
	switch {
	case value.Kind == yaml.ScalarNode && !isNull(value) && value.Value != "":
		return llmstxt.PageRef(title, value.Value), nil
	case value.Kind == yaml.SequenceNode:
		children, err := parseNav(value)
		if err != nil {
			return llmstxt.NavNode{}, err
		}
		return llmstxt.NamedGroup(title, children...), nil
	default:
		return llmstxt.NavNode{}, llmstxt.Errorf(llmstxt.ECONFIG, "nav entry %q must be a page path or a list (line %d)", title, value.Line)
	}
}

// lookup returns the value for key in a mapping node, following aliases.
func lookup(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolve(m.Content[i+1])
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// scalar returns the text of a scalar node regardless of its tag.
// A null value reads as the empty string.
func scalar(n *yaml.Node, key string) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", llmstxt.Errorf(llmstxt.ECONFIG, "%s must be a string (line %d)", key, n.Line)
	}
	if isNull(n) {
		return "", nil
	}
	return n.Value, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

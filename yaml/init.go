package yaml

import (
	"bytes"
	"strings"

	"github.com/fwojciec/llmstxt"
	"gopkg.in/yaml.v3"
)

// pluginExample is appended, commented out, under a new plugin block.
var pluginExample = []string{
	"# markdown_description: |",
	"#   Additional context for LLMs.",
	"# sections:",
	"#   Getting Started:",
	"#     - index.md",
}

// InitConfig adds an empty llmstxt plugin block to mkdocs.yml content,
// keeping the plugins list or mapping form already in use. An existing block
// is replaced only when force is set.
//
// Returns ECONFIG if the plugin is already configured and force is false, or
// if plugins is neither a list nor a mapping.
func InitConfig(data []byte, force bool) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, llmstxt.Errorf(llmstxt.ECONFIG, "invalid YAML: %v", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, llmstxt.Errorf(llmstxt.ECONFIG, "config file must be a mapping")
	}

	plugins := lookup(root, "plugins")
	if plugins == nil || isNull(plugins) {
		plugins = &yaml.Node{Kind: yaml.SequenceNode}
		setKey(root, "plugins", plugins)
	}

	block := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
	switch plugins.Kind {
	case yaml.SequenceNode:
		kept := make([]*yaml.Node, 0, len(plugins.Content)+1)
		for _, item := range plugins.Content {
			if isPluginItem(resolve(item)) {
				if !force {
					return nil, alreadyConfigured()
				}
				continue
			}
			kept = append(kept, item)
		}
		entry := &yaml.Node{Kind: yaml.MappingNode}
		setKey(entry, PluginName, block)
		plugins.Content = append(kept, entry)
	case yaml.MappingNode:
		if lookup(plugins, PluginName) != nil {
			if !force {
				return nil, alreadyConfigured()
			}
			deleteKey(plugins, PluginName)
		}
		setKey(plugins, PluginName, block)
	default:
		return nil, llmstxt.Errorf(llmstxt.ECONFIG, "plugins must be a list or mapping (line %d)", plugins.Line)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, llmstxt.Errorf(llmstxt.EINTERNAL, "encode config: %v", err)
	}
	if err := enc.Close(); err != nil {
		return nil, llmstxt.Errorf(llmstxt.EINTERNAL, "encode config: %v", err)
	}
	return addExample(buf.Bytes()), nil
}

func alreadyConfigured() error {
	return llmstxt.Errorf(llmstxt.ECONFIG, "llmstxt plugin already configured; use --force to overwrite it")
}

func isPluginItem(n *yaml.Node) bool {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value == PluginName
	case yaml.MappingNode:
		return lookup(n, PluginName) != nil
	}
	return false
}

func setKey(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
}

func deleteKey(m *yaml.Node, key string) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content = append(m.Content[:i], m.Content[i+2:]...)
			return
		}
	}
}

// addExample replaces the empty plugin block with a bare key followed by the
// commented example, indented to sit inside the block.
func addExample(out []byte) []byte {
	lines := strings.Split(string(out), "\n")
	result := make([]string, 0, len(lines)+len(pluginExample))
	inserted := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inserted || (trimmed != PluginName+": {}" && trimmed != "- "+PluginName+": {}") {
			result = append(result, line)
			continue
		}

		leading := len(line) - len(strings.TrimLeft(line, " "))
		indent := leading + 2
		if strings.HasPrefix(trimmed, "- ") {
			indent = leading + 4
		}
		result = append(result, strings.TrimSuffix(line, " {}"))
		for _, ex := range pluginExample {
			result = append(result, strings.Repeat(" ", indent)+ex)
		}
		inserted = true
	}
	return []byte(strings.Join(result, "\n"))
}

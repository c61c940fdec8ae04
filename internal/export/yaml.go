package export

import (
	"bytes"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/datasetmerge/internal/merge"
)

const yamlIndent = 2

func datasetYAML(doc DatasetDocument) ([]byte, error) {
	return encodeYAML(doc)
}

// mismatchYAML builds the report as a node tree so rows keep their scan
// order and keys keep their scalar types.
func mismatchYAML(mismatches []merge.Mismatch) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, m := range mismatches {
		rowKey := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(m.Row)}
		groups := &yaml.Node{Kind: yaml.MappingNode}
		for _, g := range m.Groups {
			key := &yaml.Node{}
			if err := key.Encode(g.Value.Native()); err != nil {
				return nil, err
			}
			files := &yaml.Node{}
			if err := files.Encode(g.Files); err != nil {
				return nil, err
			}
			groups.Content = append(groups.Content, key, files)
		}
		root.Content = append(root.Content, rowKey, groups)
	}
	return encodeYAML(root)
}

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

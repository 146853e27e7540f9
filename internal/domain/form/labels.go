package form

import (
	_ "embed"

	"gopkg.in/yaml.v2"
)

type Label struct {
	Title    string `yaml:"title"`
	Dispatch string `yaml:"dispatch"`
	Slug     string `yaml:"slug"`
	English  string `yaml:"english"`
}

//go:embed labels.yaml
var labelsYAML []byte

var labels = mustLoadLabels(labelsYAML)

func mustLoadLabels(data []byte) map[Type]Label {
	out := map[Type]Label{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		panic("form: invalid labels.yaml: " + err.Error())
	}
	return out
}

// LabelOf returns the display names for t, falling back to the raw type.
func LabelOf(t Type) Label {
	if l, ok := labels[t]; ok {
		return l
	}
	s := string(t)
	return Label{Title: s, Dispatch: s, Slug: s, English: s}
}

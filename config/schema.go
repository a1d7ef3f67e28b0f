package config

import (
	"sort"
	"strings"

	"github.com/anisan-cli/reel/constant"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
)

// Schema describes the config file as a JSON Schema. Dotted keys become
// nested tables, the way they are laid out in the TOML file.
func Schema() *jsonschema.Schema {
	root := table()
	root.Version = jsonschema.Version
	root.Title = constant.App + " configuration"

	names := lo.Keys(Default)
	sort.Strings(names)

	for _, name := range names {
		field := Default[name]
		parent := root

		path := strings.Split(name, ".")
		for _, segment := range path[:len(path)-1] {
			child, ok := parent.Properties.Get(segment)
			if !ok {
				child = table()
				parent.Properties.Set(segment, child)
			}
			parent = child
		}

		parent.Properties.Set(path[len(path)-1], field.schema())
	}

	return root
}

func table() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

func (f *Field) schema() *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:        f.typeName(),
		Description: f.Description,
		Default:     f.Value,
	}

	if s.Type == "number" {
		s.Minimum = "0"
	}

	if len(f.Options) > 0 {
		s.Enum = lo.ToAnySlice(f.Options)
	}

	return s
}

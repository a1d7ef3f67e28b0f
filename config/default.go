package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/anisan-cli/reel/color"
	"github.com/anisan-cli/reel/constant"
	"github.com/anisan-cli/reel/icon"
	"github.com/anisan-cli/reel/key"
	"github.com/anisan-cli/reel/story"
	"github.com/anisan-cli/reel/style"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Field is a registered configuration entry.
type Field struct {
	Key         string
	Value       any
	Description string
	// Options is the closed set of accepted values, if any.
	Options []string
}

// Pretty renders the field for `config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the environment variable bound to the field, e.g. REEL_STORY_FIT.
func (f *Field) Env() string {
	name := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App) + "_"
	if strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}

// Accepts reports whether v is one of the field's options.
// Fields without options accept anything.
func (f *Field) Accepts(v string) bool {
	return len(f.Options) == 0 || lo.Contains(f.Options, v)
}

func (f *Field) MarshalJSON() ([]byte, error) {
	type field struct {
		Key         string   `json:"key"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Options     []string `json:"options,omitempty"`
	}

	return json.Marshal(field{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Options:     f.Options,
	})
}

// typeName is the JSON type of the field's value.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case bool:
		return "boolean"
	case int:
		return "integer"
	case float64:
		return "number"
	case string:
		return "string"
	}
	return "unknown"
}

var (
	// Default holds every registered field by key.
	Default = make(map[string]Field)

	// EnvExposed holds keys that are bound to environment variables.
	EnvExposed []string
)

func register(k string, v any, desc string, options ...string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}

	Default[k] = Field{Key: k, Value: v, Description: desc, Options: options}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	register(key.StoryAutoplay, true, "Start playback and resume the story as soon as the media is ready")
	register(key.StoryFit, story.FitContain.String(), "How the video is inscribed into its box", story.Fits()...)
	register(key.StoryHeight, 0.0, "Fixed height of the video surface in rows.\n0 sizes the surface from the aspect ratio")
	register(key.StoryErrorText, story.DefaultErrorText, "Text shown when the media fails to load")
	register(key.StoryLoadText, "", "Text shown next to the loading spinner")

	register(key.PlayerBinary, "mpv", "mpv executable used to decode the media")
	register(key.PlayerTitle, constant.App, "Window title of the player")

	register(key.SequencerEnabled, true, "Drive the item from the in-process story sequencer")

	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, logrus.InfoLevel.String(), "Log verbosity, from least to most verbose", lo.Map(logrus.AllLevels, func(l logrus.Level, _ int) string {
		return l.String()
	})...)
	register(key.LogsJson, false, "Use json format for logs")

	register(key.CliColored, true, "Enable colored CLI output")
	register(key.IconsVariant, "plain", "Icons used by the player view", icon.AvailableVariants()...)
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)(strconv.FormatBool(value))
		}
		return style.Fg(color.Red)(strconv.FormatBool(value))
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Fg(color.Yellow)(value)
	default:
		return fmt.Sprint(value)
	}
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"label":  style.Fg(color.Blue),
	"name":   style.Fg(color.Purple),
	"hl":     highlight,
	"join":   strings.Join,
	"value":  viper.Get,
	"typeof": func(f *Field) string { return f.typeName() },
}).Parse(`{{ faint .Description }}
{{ label "Key:" }}     {{ name .Key }}
{{ label "Env:" }}     {{ .Env }}
{{ label "Value:" }}   {{ hl (value .Key) }}
{{ label "Default:" }} {{ hl .Value }}
{{ label "Type:" }}    {{ typeof . }}{{ if .Options }}
{{ label "Options:" }} {{ join .Options ", " }}{{ end }}`))

// Package icon renders the status symbols of the player view.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII or
// Unicode squares depending on user preference.
package icon

import (
	"github.com/anisan-cli/reel/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns every supported icon style.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

// Icon identifies a status symbol.
type Icon int

const (
	Loading Icon = iota
	Ready
	Failed
	Playing
	Paused
	Story
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	squares string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

var icons = map[Icon]*iconDef{
	Loading: {emoji: "⏳", nerd: "\uf110", plain: "~", squares: "◫"},
	Ready:   {emoji: "✅", nerd: "\uf00c", plain: "+", squares: "▣"},
	Failed:  {emoji: "❌", nerd: "\uf00d", plain: "x", squares: "▨"},
	Playing: {emoji: "▶️", nerd: "\uf04b", plain: ">", squares: "▶"},
	Paused:  {emoji: "⏸️", nerd: "\uf04c", plain: "=", squares: "◼"},
	Story:   {emoji: "🎞️", nerd: "\uf008", plain: "#", squares: "▤"},
}

// Get returns the symbol for i in the configured variant.
func Get(i Icon) string {
	return icons[i].Get()
}

// Package key defines the canonical set of configuration identifiers.
package key

// Story item defaults - applied to every item unless overridden by a flag.
const (
	StoryAutoplay  = "story.autoplay"
	StoryFit       = "story.fit"
	StoryHeight    = "story.height"
	StoryErrorText = "story.error_text"
	StoryLoadText  = "story.loading_text"
)

// Media playback - the external engine that decodes the asset.
const (
	PlayerBinary = "player.binary"
	PlayerTitle  = "player.title"
)

// Sequencer - the in-process story sequencer used by the CLI.
const (
	SequencerEnabled = "sequencer.enabled"
)

// Logging infrastructure.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI execution environment.
const (
	CliColored   = "cli.colored"
	IconsVariant = "icons.variant"
)

package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/AlecAivazis/survey/v2"
	"github.com/anisan-cli/reel/key"
	"github.com/anisan-cli/reel/player"
	"github.com/anisan-cli/reel/sequencer"
	"github.com/anisan-cli/reel/story"
	"github.com/anisan-cli/reel/tui"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringToStringP("header", "H", map[string]string{}, "Request header sent with the media request (key=value), repeatable")

	playCmd.Flags().Bool("autoplay", true, "Start playback as soon as the media is ready")
	lo.Must0(viper.BindPFlag(key.StoryAutoplay, playCmd.Flags().Lookup("autoplay")))

	playCmd.Flags().StringP("fit", "f", story.FitContain.String(), "How the video is inscribed into its box")
	lo.Must0(playCmd.RegisterFlagCompletionFunc("fit", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return story.Fits(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.StoryFit, playCmd.Flags().Lookup("fit")))

	playCmd.Flags().Float64("height", 0, "Fixed height of the video surface in rows (0 follows the aspect ratio)")
	lo.Must0(viper.BindPFlag(key.StoryHeight, playCmd.Flags().Lookup("height")))

	playCmd.Flags().String("mpv", "mpv", "mpv executable used to decode the media")
	lo.Must0(viper.BindPFlag(key.PlayerBinary, playCmd.Flags().Lookup("mpv")))

	playCmd.Flags().Bool("no-sequencer", false, "Play the item standalone, without a story sequencer")
}

var playCmd = &cobra.Command{
	Use:     "play [url]",
	Short:   "Play a single story item",
	Long:    "Load a networked video as a story item, pause the story while it loads and keep playback in step with the story sequencer.",
	Args:    cobra.MaximumNArgs(1),
	Example: "  reel play https://example.com/story.mp4 -H Referer=https://example.com",
	Run: func(cmd *cobra.Command, args []string) {
		var rawURL string
		if len(args) > 0 {
			rawURL = args[0]
		} else {
			input := survey.Input{
				Message: "Media URL:",
				Help:    "http(s) URL or local path of the video",
			}
			handleErr(survey.AskOne(&input, &rawURL, survey.WithValidator(survey.Required)))
		}

		headers := lo.Must(cmd.Flags().GetStringToString("header"))
		cfg, err := newStoryConfig(rawURL, headers)
		handleErr(err)

		engine := player.NewEngine(viper.GetString(key.PlayerBinary), viper.GetString(key.PlayerTitle))

		var (
			seq       *sequencer.Sequencer
			storySeq  story.Sequencer
			sequenced = viper.GetBool(key.SequencerEnabled) && !lo.Must(cmd.Flags().GetBool("no-sequencer"))
		)
		if sequenced {
			seq = sequencer.New()
			defer seq.Close()
			storySeq = seq
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		handleErr(tui.Run(ctx, &tui.Options{
			Controller: story.New(engine, storySeq, cfg),
			Sequencer:  seq,
		}))
	},
}

// newStoryConfig builds the item configuration from the flags and config file.
func newStoryConfig(rawURL string, headers map[string]string) (story.Config, error) {
	cfg := story.DefaultConfig(rawURL)
	cfg.Headers = lo.Assign(cfg.Headers, headers)
	cfg.Autoplay = viper.GetBool(key.StoryAutoplay)
	cfg.LoadingText = viper.GetString(key.StoryLoadText)
	if text := viper.GetString(key.StoryErrorText); text != "" {
		cfg.ErrorText = text
	}

	fit, err := story.ParseFit(viper.GetString(key.StoryFit))
	if err != nil {
		return cfg, err
	}
	cfg.Fit = fit

	if h := viper.GetFloat64(key.StoryHeight); h > 0 {
		cfg.Height = mo.Some(h)
	}

	return cfg, nil
}

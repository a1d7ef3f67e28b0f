package cmd

import (
	"testing"

	"github.com/anisan-cli/reel/config"
	"github.com/anisan-cli/reel/filesystem"
	"github.com/anisan-cli/reel/key"
	"github.com/anisan-cli/reel/story"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestNewStoryConfig(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		So(config.Setup(), ShouldBeNil)

		Convey("The item uses the defaults", func() {
			cfg, err := newStoryConfig("https://x/video.mp4", map[string]string{"Referer": "https://x"})
			So(err, ShouldBeNil)
			So(cfg.Autoplay, ShouldBeTrue)
			So(cfg.Fit, ShouldEqual, story.FitContain)
			So(cfg.Height.IsPresent(), ShouldBeFalse)
			So(cfg.Headers, ShouldResemble, map[string]string{"Referer": "https://x"})
			So(cfg.ErrorText, ShouldEqual, story.DefaultErrorText)
		})

		Convey("Overrides are applied", func() {
			viper.Set(key.StoryAutoplay, false)
			viper.Set(key.StoryFit, "cover")
			viper.Set(key.StoryHeight, 12.0)
			defer func() {
				viper.Set(key.StoryAutoplay, true)
				viper.Set(key.StoryFit, "contain")
				viper.Set(key.StoryHeight, 0.0)
			}()

			cfg, err := newStoryConfig("https://x/video.mp4", nil)
			So(err, ShouldBeNil)
			So(cfg.Autoplay, ShouldBeFalse)
			So(cfg.Fit, ShouldEqual, story.FitCover)
			So(cfg.Height.MustGet(), ShouldEqual, 12.0)
		})

		Convey("An unknown fit mode is rejected", func() {
			viper.Set(key.StoryFit, "stretch")
			defer viper.Set(key.StoryFit, "contain")

			_, err := newStoryConfig("https://x/video.mp4", nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseConfigValue(t *testing.T) {
	Convey("parseConfigValue", t, func() {
		v, err := parseConfigValue(config.Default[key.StoryAutoplay], "false")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, false)

		v, err = parseConfigValue(config.Default[key.StoryHeight], "8.5")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 8.5)

		_, err = parseConfigValue(config.Default[key.StoryFit], "stretch")
		So(err, ShouldNotBeNil)

		_, err = parseConfigValue(config.Default[key.StoryAutoplay], "maybe")
		So(err, ShouldNotBeNil)
	})

	Convey("errUnknownKey suggests the closest key", t, func() {
		So(errUnknownKey("story.autoplya").Error(), ShouldContainSubstring, key.StoryAutoplay)
	})

	Convey("envNames covers every exposed key", t, func() {
		names := envNames()
		So(names, ShouldContain, "REEL_STORY_AUTOPLAY")
		So(names, ShouldContain, "REEL_CONFIG_PATH")
		So(len(names), ShouldEqual, len(config.EnvExposed)+1)
	})
}

func TestFilterFields(t *testing.T) {
	Convey("filterFields matches keys fuzzily", t, func() {
		fields := filterFields([]config.Field{
			config.Default[key.StoryAutoplay],
			config.Default[key.StoryFit],
			config.Default[key.LogsLevel],
		}, "stauto")

		So(fields, ShouldHaveLength, 1)
		So(fields[0].Key, ShouldEqual, key.StoryAutoplay)
	})
}

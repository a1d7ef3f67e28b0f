// Package cmd implements the command-line interface for reel.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/anisan-cli/reel/color"
	"github.com/anisan-cli/reel/constant"
	"github.com/anisan-cli/reel/key"
	"github.com/anisan-cli/reel/log"
	"github.com/anisan-cli/reel/style"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
}

var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Play a story item and keep it in step with the story sequencer",
	Long: style.Bold(constant.App) + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Play a story item and keep it in step with the story sequencer"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(color.Red)("✖"), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

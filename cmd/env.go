package cmd

import (
	"os"
	"strings"

	"github.com/anisan-cli/reel/color"
	"github.com/anisan-cli/reel/config"
	"github.com/anisan-cli/reel/constant"
	"github.com/anisan-cli/reel/style"
	"github.com/anisan-cli/reel/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only show variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only show variables that are unset")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envNames lists every supported environment variable, sorted.
func envNames() []string {
	names := lo.Map(config.EnvExposed, func(k string, _ int) string {
		return strings.ToUpper(constant.App + "_" + config.EnvKeyReplacer.Replace(k))
	})
	names = append(names, where.EnvConfigPath)
	slices.Sort(names)
	return names
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the supported environment variables and their values",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		for _, env := range envNames() {
			value, present := os.LookupEnv(env)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}

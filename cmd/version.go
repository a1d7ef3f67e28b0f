package cmd

import (
	"os"
	"runtime"
	"text/template"

	"github.com/anisan-cli/reel/color"
	"github.com/anisan-cli/reel/constant"
	"github.com/anisan-cli/reel/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version string")
}

var versionTemplate = lo.Must(template.New("version").Funcs(map[string]any{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}         {{ bold .Version }}
  {{ faint "Git Commit" }}      {{ bold .Revision }}
  {{ faint "Build Date" }}      {{ bold .BuiltAt }}
  {{ faint "Built By" }}        {{ bold .BuiltBy }}
  {{ faint "Platform" }}        {{ bold .OS }}/{{ bold .Arch }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), struct {
			App, Version, Revision, BuiltAt, BuiltBy, OS, Arch string
		}{
			App:      constant.App,
			Version:  constant.Version,
			Revision: constant.Revision,
			BuiltAt:  constant.BuiltAt,
			BuiltBy:  constant.BuiltBy,
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
		}))
	},
}

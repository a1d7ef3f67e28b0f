package cmd

import (
	"os"

	"github.com/anisan-cli/reel/color"
	"github.com/anisan-cli/reel/style"
	"github.com/anisan-cli/reel/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type whereTarget struct {
	name     string
	where    func() string
	argLong  string
	argShort mo.Option[string]
}

var wherePaths = []*whereTarget{
	{"Config", where.Config, "config", mo.Some("c")},
	{"Logs", where.Logs, "logs", mo.Some("l")},
	{"Temp", where.Temp, "temp", mo.None[string]()},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, n := range wherePaths {
		if short, ok := n.argShort.Get(); ok {
			whereCmd.Flags().BoolP(n.argLong, short, false, n.name+" path")
		} else {
			whereCmd.Flags().Bool(n.argLong, false, n.name+" path")
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(wherePaths, func(t *whereTarget, _ int) string {
		return t.argLong
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show the directories reel uses",
	Run: func(cmd *cobra.Command, args []string) {
		for _, n := range wherePaths {
			if lo.Must(cmd.Flags().GetBool(n.argLong)) {
				cmd.Println(n.where())
				return
			}
		}

		headerStyle := style.New().Bold(true).Foreground(color.Purple).Render
		for i, n := range wherePaths {
			cmd.Printf("%s %s\n", headerStyle(n.name+"?"), style.Fg(color.Yellow)("--"+n.argLong))
			cmd.Println(n.where())
			if i < len(wherePaths)-1 {
				cmd.Println()
			}
		}
	},
}

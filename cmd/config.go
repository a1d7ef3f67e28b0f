package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/anisan-cli/reel/color"
	"github.com/anisan-cli/reel/config"
	"github.com/anisan-cli/reel/constant"
	"github.com/anisan-cli/reel/filesystem"
	"github.com/anisan-cli/reel/style"
	"github.com/anisan-cli/reel/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func errUnknownKey(name string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})
	return fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(closest),
	)
}

// parseConfigValue converts raw into the type of the field's default value.
func parseConfigValue(field config.Field, raw string) (any, error) {
	switch field.Value.(type) {
	case string:
		if !field.Accepts(raw) {
			return nil, fmt.Errorf("invalid value %q for %s, expected one of %s", raw, field.Key, strings.Join(field.Options, ", "))
		}
		return raw, nil
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw)
		}
		return v, nil
	case float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number value: %s", raw)
		}
		return v, nil
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported type for %s", field.Key)
	}
}

// filterFields keeps the fields whose key fuzzily matches filter.
func filterFields(fields []config.Field, filter string) []config.Field {
	return lo.Filter(fields, func(f config.Field, _ int) bool {
		return fuzzy.MatchFold(filter, f.Key)
	})
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func configFilePath() string {
	return filepath.Join(where.Config(), fmt.Sprintf("%s.%s", constant.App, "toml"))
}

func writeConfig() error {
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings and defaults",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Configuration keys to describe")
	configInfoCmd.Flags().StringP("filter", "f", "", "Fuzzy filter applied to the configuration keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	configInfoCmd.MarkFlagsMutuallyExclusive("key", "filter")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configInfoCmd.SetOut(os.Stdout)
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe configuration fields",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			keys   = lo.Must(cmd.Flags().GetStringSlice("key"))
			filter = lo.Must(cmd.Flags().GetString("filter"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			fields = lo.Values(config.Default)
		)

		if filter != "" {
			fields = filterFields(fields, filter)
		}

		if len(keys) > 0 {
			fields = make([]config.Field, 0, len(keys))
			for _, k := range keys {
				field, ok := config.Default[k]
				if !ok {
					handleErr(errUnknownKey(k))
				}
				fields = append(fields, field)
			}
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if asJson {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(lo.ToSlicePtr(fields)))
			return
		}

		for i, field := range fields {
			cmd.Print(field.Pretty())
			if i < len(fields)-1 {
				cmd.Print("\n\n")
			}
		}
		cmd.Println()
	},
}

func init() {
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.SetOut(os.Stdout)
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the config file",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(config.Schema()))
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.SetOut(os.Stdout)
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a configuration key",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		if _, ok := config.Default[args[0]]; !ok {
			handleErr(errUnknownKey(args[0]))
		}
		cmd.Println(viper.Get(args[0]))
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.SetOut(os.Stdout)
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value]",
	Short:             "Update a configuration key and write the config file",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field, ok := config.Default[args[0]]
		if !ok {
			handleErr(errUnknownKey(args[0]))
		}

		v, err := parseConfigValue(field, args[1])
		handleErr(err)

		viper.Set(field.Key, v)
		handleErr(writeConfig())

		cmd.Printf(
			"%s set %s to %s\n",
			style.Fg(color.Green)("✔"),
			style.Fg(color.Purple)(field.Key),
			style.Fg(color.Yellow)(fmt.Sprintf("%v", v)),
		)
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite the existing configuration file")
	configWriteCmd.SetOut(os.Stdout)
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current configuration to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFilePath()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if exists := lo.Must(filesystem.API().Exists(path)); exists {
				handleErr(filesystem.API().Remove(path))
			}
		}

		handleErr(viper.SafeWriteConfig())
		cmd.Printf("%s wrote config to %s\n", style.Fg(color.Green)("✔"), path)
	},
}

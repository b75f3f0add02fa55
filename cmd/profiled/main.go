package main

import (
	"fmt"
	"os"
	"profiled/internal/di"
	"profiled/internal/structures"

	"github.com/spf13/cobra"
)

var flags = &structures.CliFlags{}

var rootCmd = &cobra.Command{
	Use:   "profiled",
	Short: "Profile history daemon",
	Long:  "profiled stores dataset profile snapshots and serves their history as chart series.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := di.InitApp(flags)
		return err
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "./config.yml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror application logs to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "easysh",
	Short: "Interactive descriptor-driven command shell",
	Long: `easysh is an interactive shell over a descriptor-driven command
dispatcher: every function is registered under a name and a one character
per argument type descriptor, lines are tokenized, type checked and
dispatched. Running without a subcommand starts the interactive shell.`,
	Args:         cobra.NoArgs,
	RunE:         runShell,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(*cobra.Command, []string) {
		fmt.Printf("easysh %s\n", version)
	},
}

func main() {
	rootCmd.Version = version
	rootCmd.AddCommand(runCmd, execCmd, listCmd, versionCmd)
	rootCmd.PersistentFlags().StringP("config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/lunfardo314/easysh/dispatch"
	"github.com/spf13/cobra"
)

// appConfig is the optional TOML configuration of the binary. Missing
// fields keep their defaults, the --debug flag overrides the file.
type appConfig struct {
	Prompt       string `toml:"prompt"`
	HistoryFile  string `toml:"history_file"`
	HistoryLimit int    `toml:"history_limit"`
	MaxHexStrLen int    `toml:"max_hexstr_len"`
	Debug        bool   `toml:"debug"`
}

func defaultConfig() appConfig {
	return appConfig{
		Prompt:       "easysh> ",
		HistoryLimit: 100,
		MaxHexStrLen: dispatch.DefaultMaxHexStrLen,
	}
}

func loadConfig(cmd *cobra.Command) (appConfig, error) {
	cfg := defaultConfig()
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return cfg, err
	}
	if path != "" {
		if _, err = toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: failed to parse TOML: %v", path, err)
		}
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}
	return cfg, nil
}

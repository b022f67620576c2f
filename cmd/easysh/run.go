package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lunfardo314/easysh/dispatch"
	"github.com/lunfardo314/easysh/shell"
	"github.com/lunfardo314/easysh/shortcut"
	"github.com/spf13/cobra"
)

// app bundles the wired components of one invocation.
type app struct {
	cfg appConfig
	reg *dispatch.Registry
	sc  *shortcut.Set
	sh  *shell.Shell
}

func buildApp(cmd *cobra.Command, out io.Writer) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	st := newDemoState(out)
	reg, err := dispatch.RegistryFromSource(commandSource, st.implementations(), cfg.MaxHexStrLen)
	if err != nil {
		return nil, err
	}
	sc, err := shortcut.New(shortcutSource, st.shortcuts(reg))
	if err != nil {
		return nil, err
	}
	sh, err := shell.New(shell.Config{
		Registry:     reg,
		Shortcuts:    sc,
		Prompt:       cfg.Prompt,
		HistoryLimit: cfg.HistoryLimit,
		HistoryFile:  cfg.HistoryFile,
		Debug:        cfg.Debug,
		Out:          out,
	})
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, reg: reg, sc: sc, sh: sh}, nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive shell (the default)",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.sh.Close()
	}()
	fmt.Printf("easysh %s: %d commands, %d shortcuts\n", version, a.reg.NumFunctions(), a.sc.NumShortcuts())
	fmt.Println("❗Type '#q' to exit, '#h' for help❗")
	return a.sh.Run(cmd.Context())
}

var execCmd = &cobra.Command{
	Use:   "exec LINE...",
	Short: "Execute command lines non-interactively",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd, os.Stdout)
		if err != nil {
			return err
		}
		defer func() {
			_ = a.sh.Close()
		}()
		failed := 0
		for _, line := range args {
			if a.sh.ExecReport(line) != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d command line(s) failed", failed, len(args))
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered functions, shortcuts and type codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := buildApp(cmd, os.Stdout)
		if err != nil {
			return err
		}
		defer func() {
			_ = a.sh.Close()
		}()
		for _, fi := range a.reg.Functions() {
			fmt.Printf("%-10s %s\n", fi.Name, fi.Descriptor)
		}
		fmt.Printf("\nshortcuts: %s\n\n%s\n", a.sc.Help(), dispatch.DescriptorHelp())
		return nil
	},
}

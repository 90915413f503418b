package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jbang-lens/internal/config"
	"jbang-lens/internal/logging"
	"jbang-lens/internal/textutil"
	"jbang-lens/internal/workspace"
)

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"log-level":      "log_level",
	"format":         "format",
	"jobs":           "jobs",
	"cache-size":     "cache_size",
	"cache-dir":      "cache_dir",
	"max-file-bytes": "max_file_bytes",
	"exclude":        "exclude",
	"ext":            "extensions",
	"use-gitignore":  "use_gitignore",
	"maven-home":     "maven_home",
}

// app carries the resolved configuration to the subcommands.
type app struct {
	cfgFile string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "jbang-lens",
		Short:         "Inspect JBang scripts: directives, run anchors and dependencies",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./.jbang-lens.yaml or $HOME/.jbang-lens.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error (default info)")

	root.AddCommand(
		newScanCmd(a),
		newCheckCmd(),
		newVersionsCmd(),
		newDirectivesCmd(),
		newDepsCmd(a),
		newHoverCmd(a),
	)
	return root
}

// init loads configuration and binds the flags that cmd defines.
func (a *app) init(cmd *cobra.Command) error {
	v, err := config.New(a.cfgFile)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	logging.Init(cfg.LogLevel, cmd.ErrOrStderr())
	if used := v.ConfigFileUsed(); used != "" {
		logging.Debug("config loaded", "file", used)
	}
	a.cfg = cfg
	return nil
}

// readLines reads a script and splits it into lines with line endings
// normalised.
func readLines(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return textutil.Lines(b), nil
}

// languageOf returns lang, or the language implied by path's extension.
func languageOf(path, lang string) string {
	if lang != "" {
		return lang
	}
	return workspace.LanguageID(strings.ToLower(filepath.Ext(path)))
}

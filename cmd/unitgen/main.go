// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Unitgen generates the Go types of the quantity kinds of a catalog.
//
// Run without arguments, it loads the catalog and the templates, and writes
// the generated code in the output root:
//
//	unitgen [--config file] [--output dir] [--workers n] [--only pattern] [-v]
//
// Other commands:
//
//	unitgen watch     regenerate when a catalog document or template changes
//	unitgen doc       write the documentation of the catalog
//	unitgen version   print the version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/open2b/unitgen/internal/config"
)

// TestEnvironment is true when testing unitgen, false otherwise.
var TestEnvironment = false

// exit causes the current program to exit with the given status code. If
// running in a test environment, every exit call is a no-op.
func exit(status int) {
	if !TestEnvironment {
		os.Exit(status)
	}
}

// stderr prints lines on stderr.
func stderr(lines ...string) {
	for _, l := range lines {
		fmt.Fprint(os.Stderr, l+"\n")
	}
}

// exitError prints msg on stderr with a bold red color and exits with status
// code 1.
func exitError(format string, a ...interface{}) {
	msg := fmt.Errorf(format, a...)
	stderr("\033[1;31m"+msg.Error()+"\033[0m", `exit status 1`)
	exit(1)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := newRootCmd(nil).ExecuteContext(ctx)
	if err != nil {
		exitError("%s", err)
	}
}

// app holds the global flags and the logger of the commands.
type app struct {
	configFile string
	output     string
	workers    int
	only       []string
	verbose    bool
	logger     *zap.Logger
}

// newRootCmd returns the root command. If logger is nil, a logger on
// stderr is built before running a command.
func newRootCmd(logger *zap.Logger) *cobra.Command {
	a := &app{logger: logger}
	root := &cobra.Command{
		Use:   "unitgen",
		Short: "Generate the Go types of the quantity kinds of a catalog",
		Long: `Unitgen generates the scalar, vector and matrix types of the quantity kinds
of a catalog, in double and single precision, and the any-dimension scalar
types that can be cast to them.

Run without arguments to generate the code in the output root.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			var err error
			a.logger, err = newLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := a.config()
			if err != nil {
				return err
			}
			catalogFS, templatesFS := sources(conf)
			_, err = generate(cmd.Context(), conf, catalogFS, templatesFS, a.logger)
			return err
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "configuration file (default: "+config.FileName+" in the current directory or a parent)")
	flags.StringVar(&a.output, "output", "", "root directory of the generated code")
	flags.IntVar(&a.workers, "workers", 0, "number of documents generated concurrently")
	flags.StringArrayVar(&a.only, "only", nil, "generate only the output paths matching the pattern")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(newWatchCmd(a), newDocCmd(a), newVersionCmd())
	return root
}

// newLogger returns a logger on stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	var conf zap.Config
	if verbose {
		conf = zap.NewDevelopmentConfig()
	} else {
		conf = zap.NewProductionConfig()
		conf.Encoding = "console"
		conf.EncoderConfig.TimeKey = ""
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		conf.DisableCaller = true
		conf.DisableStacktrace = true
	}
	conf.OutputPaths = []string{"stderr"}
	return conf.Build()
}

// config returns the configuration, read from the configuration file if
// any, with the flags applied.
func (a *app) config() (*config.Config, error) {
	name := a.configFile
	if name == "" {
		var err error
		name, err = config.Find(".")
		if err != nil {
			return nil, err
		}
	}
	conf := config.Default()
	if name != "" {
		var err error
		conf, err = config.Load(name)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("configuration loaded", zap.String("file", name))
	}
	if a.output != "" {
		conf.Output = a.output
	}
	if a.workers > 0 {
		conf.Workers = a.workers
	}
	if len(a.only) > 0 {
		conf.Only = a.only
	}
	err := conf.Validate()
	if err != nil {
		return nil, err
	}
	return conf, nil
}

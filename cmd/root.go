/*
 * Copyright (c) 2020 Siemens AG
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 *
 * Author(s): Jonas Plum
 */

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/evidencechain"
	"github.com/forensicanalysis/evidencechain/config"
	"github.com/forensicanalysis/evidencechain/digest"
	"github.com/forensicanalysis/evidencechain/logger"
	"github.com/forensicanalysis/evidencechain/report"
)

// environment holds the global flags and the loaded configuration.
type environment struct {
	configPath string
	root       string
	logLevel   string
	cfg        *config.Config
}

// Root is the evidencechain command with all subcommands.
func Root() *cobra.Command {
	env := &environment{}
	rootCommand := &cobra.Command{
		Use:           "evidencechain",
		Short:         "Chain of custody for extracted Android evidence",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.load()
		},
	}
	rootCommand.PersistentFlags().StringVar(&env.configPath, "config", "", "config file (default $"+config.EnvPrefix+"_CONFIG)")
	rootCommand.PersistentFlags().StringVar(&env.root, "root", "", "collection root")
	rootCommand.PersistentFlags().StringVar(&env.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCommand.AddCommand(recordCommand(env), verifyCommand(env), ledgerCommand(env),
		reportCommand(env), serveCommand(env))
	return rootCommand
}

func (env *environment) load() error {
	cfg, err := config.Load(env.configPath)
	if err != nil {
		return err
	}
	if env.root != "" {
		cfg.CollectionRoot = env.root
	}
	if env.logLevel != "" {
		cfg.LogLevel = env.logLevel
	}
	logger.Init(cfg.LogLevel)
	env.cfg = cfg
	return nil
}

func (env *environment) openLedger() (*evidencechain.Ledger, error) {
	return evidencechain.OpenLedger(env.cfg.CollectionRoot)
}

func (env *environment) recorder(ledger evidencechain.Appender) (*evidencechain.Recorder, error) {
	extra, err := digest.ParseAlgorithms(env.cfg.ExtraHashes)
	if err != nil {
		return nil, errors.Wrap(err, "invalid extra_hashes")
	}
	return evidencechain.NewRecorder(ledger, evidencechain.RecorderOptions{
		Operator:    env.cfg.Operator,
		DeviceID:    env.cfg.DeviceID,
		ExtraHashes: extra,
	}), nil
}

func (env *environment) assembler(ledger evidencechain.Records) (*report.Assembler, error) {
	root, err := filepath.Abs(env.cfg.CollectionRoot)
	if err != nil {
		return nil, err
	}
	fs := afero.NewBasePathFs(afero.NewOsFs(), root)
	return report.NewAssembler(ledger, fs, report.Options{
		Prefix:   env.cfg.ReportPrefix,
		Operator: env.cfg.Operator,
	}), nil
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

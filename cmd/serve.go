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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/forensicanalysis/evidencechain"
	"github.com/forensicanalysis/evidencechain/server"
)

func serveCommand(env *environment) *cobra.Command {
	var listen string
	serveCmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server", "http"},
		Short:   "Serve the evidence chain over HTTP",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				env.cfg.Listen = listen
			}

			root, err := filepath.Abs(env.cfg.CollectionRoot)
			if err != nil {
				return err
			}
			ledger, err := env.openLedger()
			if err != nil {
				return err
			}
			defer ledger.Close()

			recorder, err := env.recorder(ledger)
			if err != nil {
				return err
			}
			assembler, err := env.assembler(ledger)
			if err != nil {
				return err
			}

			s := server.New(root, ledger, recorder, evidencechain.NewVerifier(ledger, nil), assembler)
			return s.Run(env.cfg.Listen)
		},
	}
	serveCmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	return serveCmd
}

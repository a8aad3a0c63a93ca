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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forensicanalysis/evidencechain"
)

func recordCommand(env *environment) *cobra.Command {
	var operation string
	recordCmd := &cobra.Command{
		Use:   "record <file>...",
		Short: "Record extracted files in the evidence ledger",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := env.openLedger()
			if err != nil {
				return err
			}
			defer ledger.Close()

			recorder, err := env.recorder(ledger)
			if err != nil {
				return err
			}

			failed := 0
			records := make([]evidencechain.EvidenceRecord, 0, len(args))
			for _, arg := range args {
				result := recorder.Record(arg, operation)
				if !result.OK() {
					failed++
				}
				records = append(records, result.Record)
			}
			if err := printJSON(cmd.OutOrStdout(), records); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files recorded as FAIL", failed, len(args))
			}
			return nil
		},
	}
	recordCmd.Flags().StringVar(&operation, "operation", evidencechain.DefaultOperation, "acquisition step that produced the files")
	return recordCmd
}

func verifyCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>...",
		Short: "Verify files against the evidence ledger",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := env.openLedger()
			if err != nil {
				return err
			}
			defer ledger.Close()

			verifier := evidencechain.NewVerifier(ledger, nil)
			tampered := 0
			var results []*evidencechain.VerificationResult
			for _, arg := range args {
				result, err := verifier.Verify(arg)
				if err != nil {
					return err
				}
				if !result.Match {
					tampered++
				}
				results = append(results, result)
			}
			if err := printJSON(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			if tampered > 0 {
				return fmt.Errorf("tampering detected in %d of %d files", tampered, len(args))
			}
			return nil
		},
	}
}

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
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/evidencechain/report"
)

func reportCommand(env *environment) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and show forensic reports",
	}
	reportCmd.AddCommand(generateCommand(env), showCommand(env))
	return reportCmd
}

func generateCommand(env *environment) *cobra.Command {
	var metadata report.CaseMetadata
	var extractionFile string
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report for the collection root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := report.ExtractionData{}
			if extractionFile != "" {
				b, err := ioutil.ReadFile(extractionFile)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(b, &data); err != nil {
					return errors.Wrapf(err, "could not parse %s", extractionFile)
				}
			}

			ledger, err := env.openLedger()
			if err != nil {
				return err
			}
			defer ledger.Close()

			assembler, err := env.assembler(ledger)
			if err != nil {
				return err
			}
			generated, files, err := assembler.Generate(data, metadata)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"report_id": generated.ReportID,
				"files":     files,
			})
		},
	}
	flags := generateCmd.Flags()
	flags.StringVar(&metadata.CaseName, "case-name", "", "case name")
	flags.StringVar(&metadata.CaseNumber, "case-number", "", "case number")
	flags.StringVar(&metadata.IncidentDate, "incident-date", "", "date of the incident")
	flags.StringVar(&metadata.Location, "location", "", "location of the incident")
	flags.StringVar(&metadata.Description, "description", "", "case description (markdown)")
	flags.StringVar(&extractionFile, "extraction", "", "json file with extraction metadata")
	return generateCmd
}

func showCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "show <report id>",
		Short: "Print the JSON document of a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := env.openLedger()
			if err != nil {
				return err
			}
			defer ledger.Close()

			assembler, err := env.assembler(ledger)
			if err != nil {
				return err
			}
			loaded, err := assembler.Load(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), loaded)
		},
	}
}

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

// Package main implements the evidencechain command line tool. It records
// files extracted from Android devices in an evidence ledger, verifies them
// and generates forensic reports.
//     record    Record extracted files
//     verify    Verify files against the ledger
//     ledger    Inspect (list, stats, history) and repair the ledger
//     report    Generate and show forensic reports
//     serve     Serve the evidence chain over HTTP
//
// Usage
//
// Record and verify a file
//     evidencechain record --operation calls_extraction collected_data/calls/calls.txt
//     evidencechain verify collected_data/calls/calls.txt
// Inspect the ledger
//     evidencechain ledger list
//     evidencechain ledger history calls.txt
// Generate a report
//     evidencechain report generate --case-name "Affaire X" --case-number CS-2024-042
package main

import (
	"fmt"
	"os"

	"github.com/forensicanalysis/evidencechain/cmd"
)

func main() {
	if err := cmd.Root().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

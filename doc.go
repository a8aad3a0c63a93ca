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

// Package evidencechain keeps the chain of custody for artefacts acquired from
// Android devices. Every extracted file is recorded with its MD5, SHA-1 and
// SHA-256 digests in an append-only evidence ledger, which can later be used to
// verify that the file was not altered and to assemble forensic reports.
//
// The evidence ledger
//
// The ledger lives in the evidence_chain folder of a collection root:
//     collected_data/
//     ├── calls/calls_20240101_120000.txt
//     ├── ...
//     ├── evidence_chain
//     │   ├── evidence_log.csv   one row per record, fixed columns
//     │   ├── evidence_log.json  {"evidence_chain": [...]}, insertion order
//     │   └── evidence_log.db    sqlite journal of all records
//     └── forensic_reports
//         ├── FR-20240101-120500.json
//         └── FR-20240101-120500.html
//
// The conventions of the ledger are:
//     - Records are never edited or removed.
//     - The most recent PASS record for a file name is the reference for verification.
//     - Records that could not be digested are kept with integrity_check FAIL.
//     - The journal is the source used to rebuild the JSON document (Ledger.Repair).
package evidencechain

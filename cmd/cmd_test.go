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
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forensicanalysis/evidencechain"
)

func run(t *testing.T, args ...string) (string, error) {
	root := Root()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(ioutil.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func setup(t *testing.T) (string, string) {
	dir := t.TempDir()
	file := filepath.Join(dir, "collected_data", "sms", "sms.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0755))
	require.NoError(t, ioutil.WriteFile(file, []byte("hello world\n"), 0644))
	return filepath.Join(dir, "collected_data"), file
}

func Test_recordCommand(t *testing.T) {
	root, file := setup(t)

	out, err := run(t, "record", "--root", root, "--operation", "sms_extraction", file)
	require.NoError(t, err)

	var records []evidencechain.EvidenceRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, evidencechain.IntegrityPass, records[0].IntegrityCheck)
	assert.Equal(t, "sms_extraction", records[0].Operation)
	assert.FileExists(t, filepath.Join(root, evidencechain.ChainDir, evidencechain.CSVName))

	_, err = run(t, "record", "--root", root, filepath.Join(root, "missing.txt"))
	assert.Error(t, err)
}

func Test_verifyCommand(t *testing.T) {
	root, file := setup(t)

	_, err := run(t, "record", "--root", root, file)
	require.NoError(t, err)

	out, err := run(t, "verify", "--root", root, file)
	require.NoError(t, err)
	assert.Contains(t, out, `"outcome": "VERIFIED"`)

	require.NoError(t, ioutil.WriteFile(file, []byte("tampered\n"), 0644))
	out, err = run(t, "verify", "--root", root, file)
	assert.Error(t, err)
	assert.Contains(t, out, `"outcome": "TAMPERED"`)
}

func Test_ledgerCommand(t *testing.T) {
	root, file := setup(t)

	for i := 0; i < 2; i++ {
		_, err := run(t, "record", "--root", root, file)
		require.NoError(t, err)
	}

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"list", []string{"ledger", "list"}, `"filename": "sms.txt"`, false},
		{"stats", []string{"ledger", "stats"}, `"total_entries": 2`, false},
		{"history", []string{"ledger", "history", "sms.txt"}, `"operation": "extraction"`, false},
		{"history needs name", []string{"ledger", "history"}, "", true},
		{"repair", []string{"ledger", "repair"}, "restored 2 records", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append(tt.args, "--root", root)...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ledger error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Contains(t, out, tt.want)
		})
	}
}

func Test_reportCommand(t *testing.T) {
	root, file := setup(t)
	_, err := run(t, "record", "--root", root, file)
	require.NoError(t, err)

	extraction := filepath.Join(t.TempDir(), "extraction.json")
	require.NoError(t, ioutil.WriteFile(extraction, []byte(`{"has_sms": true}`), 0644))

	out, err := run(t, "report", "generate", "--root", root, "--case-name", "Affaire X", "--extraction", extraction)
	require.NoError(t, err)

	var generated struct {
		ReportID string            `json:"report_id"`
		Files    map[string]string `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &generated))
	assert.True(t, strings.HasPrefix(generated.ReportID, "FR-"))
	assert.FileExists(t, filepath.Join(root, generated.Files["json"]))
	assert.FileExists(t, filepath.Join(root, generated.Files["html"]))

	out, err = run(t, "report", "show", "--root", root, generated.ReportID)
	require.NoError(t, err)
	assert.Contains(t, out, `"case_name": "Affaire X"`)
	assert.Contains(t, out, `"sms_messages_found": "Yes"`)
	assert.Contains(t, out, `"total_files": 1`)

	_, err = run(t, "report", "show", "--root", root, "FR-19990101-000000")
	assert.Error(t, err)
}

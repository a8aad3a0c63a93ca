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

package evidencechain

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forensicanalysis/evidencechain/digest"
)

type memoryLedger struct {
	records []EvidenceRecord
	err     error
}

func (m *memoryLedger) Append(record EvidenceRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, record)
	return nil
}

func (m *memoryLedger) All() ([]EvidenceRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func TestRecorder_Record(t *testing.T) {
	root, ledger := setup(t)
	file := writeFile(t, filepath.Join(root, "calls", "calls_20240101_120000.txt"), "hello world\n")

	recorder := NewRecorder(ledger, RecorderOptions{})
	result := recorder.Record(file, "test_extraction")
	require.NoError(t, result.Err)
	assert.True(t, result.OK())

	record := result.Record
	assert.Equal(t, "calls_20240101_120000.txt", record.Filename)
	assert.Equal(t, file, record.FullPath)
	assert.Equal(t, int64(12), record.FileSize)
	assert.Equal(t, "12.00 B", record.FileSizeReadable)
	assert.Equal(t, helloMD5, record.MD5)
	assert.Equal(t, helloSHA1, record.SHA1)
	assert.Equal(t, helloSHA256, record.SHA256)
	assert.Equal(t, "test_extraction", record.Operation)
	assert.Equal(t, DefaultOperator, record.Operator)
	assert.Equal(t, DefaultDeviceID, record.DeviceID)
	assert.Equal(t, IntegrityPass, record.IntegrityCheck)
	assert.Equal(t, "test_extraction via ADB backup", record.Notes)
	assert.True(t, strings.HasPrefix(record.EvidenceID, "evidence--"))
	assert.NotEmpty(t, record.ModifiedTime)
	assert.NotEmpty(t, record.AccessedTime)
	assert.Empty(t, record.Error)

	_, err := time.Parse(TimeFormat, record.Timestamp)
	assert.NoError(t, err)

	records, err := ledger.All()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.EvidenceID, records[0].EvidenceID)
}

func TestRecorder_RecordDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/empty.bin", nil, 0644))

	ledger := &memoryLedger{}
	recorder := NewRecorder(ledger, RecorderOptions{Fs: fs, Operator: "Analyst", DeviceID: "R58M12345"})
	result := recorder.Record("/data/empty.bin", "")
	require.NoError(t, result.Err)

	assert.Equal(t, DefaultOperation, result.Record.Operation)
	assert.Equal(t, "extraction via ADB backup", result.Record.Notes)
	assert.Equal(t, "Analyst", result.Record.Operator)
	assert.Equal(t, "R58M12345", result.Record.DeviceID)
	assert.Equal(t, "0 B", result.Record.FileSizeReadable)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", result.Record.SHA256)
	assert.Empty(t, result.Record.AccessedTime)
	assert.Len(t, ledger.records, 1)
}

func TestRecorder_RecordMimeAndExtraHashes(t *testing.T) {
	fs := afero.NewMemMapFs()
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}
	require.NoError(t, afero.WriteFile(fs, "/DCIM/IMG_0001.png", png, 0644))

	ledger := &memoryLedger{}
	recorder := NewRecorder(ledger, RecorderOptions{
		Fs:          fs,
		ExtraHashes: []digest.Algorithm{digest.SHA256, digest.SHA512, digest.BLAKE3},
	})
	result := recorder.Record("/DCIM/IMG_0001.png", "images_extraction")
	require.NoError(t, result.Err)

	assert.Equal(t, "image/png", result.Record.MimeType)
	assert.Len(t, result.Record.ExtraHashes, 2)
	assert.Len(t, result.Record.ExtraHashes["sha512"], 128)
	assert.Len(t, result.Record.ExtraHashes["blake3"], 64)
}

func TestRecorder_RecordDegraded(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/collected_data/calls", 0755))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing file", "/collected_data/calls/gone.txt", ErrFileNotFound},
		{"directory", "/collected_data/calls", ErrNotRegularFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &memoryLedger{}
			recorder := NewRecorder(ledger, RecorderOptions{Fs: fs})

			result := recorder.Record(tt.path, "calls_extraction")
			require.Error(t, result.Err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(result.Err, tt.wantErr))
			}
			assert.False(t, result.OK())

			record := result.Record
			assert.Equal(t, IntegrityFail, record.IntegrityCheck)
			assert.Equal(t, filepath.Base(tt.path), record.Filename)
			assert.Equal(t, "calls_extraction", record.Operation)
			assert.NotEmpty(t, record.Error)
			assert.NotEmpty(t, record.Timestamp)
			assert.Empty(t, record.SHA256)

			require.Len(t, ledger.records, 1)
			assert.Equal(t, IntegrityFail, ledger.records[0].IntegrityCheck)
		})
	}
}

func TestRecorder_RecordLedgerFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/sms.txt", []byte("hello world\n"), 0644))

	ledger := &memoryLedger{err: persistenceError("document", errors.New("disk full"))}
	result := NewRecorder(ledger, RecorderOptions{Fs: fs}).Record("/sms.txt", "sms_extraction")

	assert.True(t, errors.Is(result.Err, ErrPersistence))
	assert.Equal(t, IntegrityFail, result.Record.IntegrityCheck)
	assert.Contains(t, result.Record.Error, "disk full")
	assert.Empty(t, ledger.records)
}

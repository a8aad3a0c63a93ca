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
	"github.com/google/uuid"
)

// IntegrityStatus is the state of a record at creation time.
type IntegrityStatus string

const (
	// IntegrityPass marks a record whose digests were computed.
	IntegrityPass IntegrityStatus = "PASS"
	// IntegrityFail marks a degraded record.
	IntegrityFail IntegrityStatus = "FAIL"
)

// TimeFormat is used for all timestamps in the ledger.
const TimeFormat = "2006-01-02T15:04:05.000000Z07:00"

// CSVColumns is the fixed column order of evidence_log.csv.
var CSVColumns = []string{
	"timestamp", "filename", "full_path", "file_size",
	"file_size_readable", "md5", "sha1", "sha256",
	"operation", "operator", "device_id", "integrity_check", "notes",
}

// EvidenceRecord is a single entry in the evidence ledger.
type EvidenceRecord struct {
	Timestamp        string          `json:"timestamp" structs:"timestamp"`
	Filename         string          `json:"filename" structs:"filename"`
	FullPath         string          `json:"full_path" structs:"full_path"`
	FileSize         int64           `json:"file_size" structs:"file_size"`
	FileSizeReadable string          `json:"file_size_readable,omitempty" structs:"file_size_readable"`
	MD5              string          `json:"md5,omitempty" structs:"md5"`
	SHA1             string          `json:"sha1,omitempty" structs:"sha1"`
	SHA256           string          `json:"sha256,omitempty" structs:"sha256"`
	Operation        string          `json:"operation" structs:"operation"`
	Operator         string          `json:"operator" structs:"operator"`
	DeviceID         string          `json:"device_id" structs:"device_id"`
	IntegrityCheck   IntegrityStatus `json:"integrity_check" structs:"integrity_check"`
	Notes            string          `json:"notes" structs:"notes"`

	EvidenceID   string            `json:"evidence_id,omitempty" structs:"evidence_id"`
	MimeType     string            `json:"mime_type,omitempty" structs:"mime_type"`
	ModifiedTime string            `json:"modified_time,omitempty" structs:"modified_time"`
	AccessedTime string            `json:"accessed_time,omitempty" structs:"accessed_time"`
	ChangedTime  string            `json:"changed_time,omitempty" structs:"changed_time"`
	BirthTime    string            `json:"birth_time,omitempty" structs:"birth_time"`
	ExtraHashes  map[string]string `json:"extra_hashes,omitempty" structs:"extra_hashes"`
	Error        string            `json:"error,omitempty" structs:"error"`
}

// NewEvidenceID issues a new evidence identifier.
func NewEvidenceID() string {
	return "evidence--" + uuid.New().String()
}

// Passed reports whether the record carries valid digests.
func (r EvidenceRecord) Passed() bool {
	return r.IntegrityCheck == IntegrityPass && r.SHA256 != ""
}

// latestPass returns the index of the last PASS record with the given file
// name or -1.
func latestPass(records []EvidenceRecord, filename string) int {
	latest := -1
	for i := range records {
		if records[i].Filename == filename && records[i].Passed() {
			latest = i
		}
	}
	return latest
}

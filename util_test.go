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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 12, "12.00 B"},
		{"just below kilo", 1023, "1023.00 B"},
		{"kilo", 1024, "1.00 KB"},
		{"kilo and a half", 1536, "1.50 KB"},
		{"mega", 5 * 1024 * 1024, "5.00 MB"},
		{"giga", 3 * 1024 * 1024 * 1024, "3.00 GB"},
		{"tera", 2 * 1024 * 1024 * 1024 * 1024, "2.00 TB"},
		{"peta in tera", 1024 * 1024 * 1024 * 1024 * 1024, "1024.00 TB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFileSize(tt.size))
		})
	}
}

func TestCSVRow(t *testing.T) {
	record := EvidenceRecord{
		Timestamp:        "2024-01-01T12:00:00.000000+00:00",
		Filename:         "calls.txt",
		FullPath:         "collected_data/calls/calls.txt",
		FileSize:         12,
		FileSizeReadable: "12.00 B",
		MD5:              "6f5902ac237024bdd0c176cb93063dc4",
		SHA1:             "22596363b3de40b06f981fb85d82312e8c0ed511",
		SHA256:           "a948904f2f0f479b8f8197694b30184b0d2ed1c1cd2a1ec0fb85d299a192a447",
		Operation:        "calls_extraction",
		Operator:         "Android Collector",
		DeviceID:         "N/A",
		IntegrityCheck:   IntegrityPass,
		Notes:            "calls_extraction via ADB backup",
		EvidenceID:       "evidence--0c3f4b4e-0000-4000-8000-000000000000",
		ExtraHashes:      map[string]string{"sha512": "x"},
	}

	row := csvRow(record)
	assert.Len(t, row, len(CSVColumns))
	assert.Equal(t, []string{
		"2024-01-01T12:00:00.000000+00:00", "calls.txt", "collected_data/calls/calls.txt", "12",
		"12.00 B", "6f5902ac237024bdd0c176cb93063dc4", "22596363b3de40b06f981fb85d82312e8c0ed511",
		"a948904f2f0f479b8f8197694b30184b0d2ed1c1cd2a1ec0fb85d299a192a447",
		"calls_extraction", "Android Collector", "N/A", "PASS", "calls_extraction via ADB backup",
	}, row)

	degraded := csvRow(EvidenceRecord{Filename: "gone.txt", IntegrityCheck: IntegrityFail})
	assert.Equal(t, "gone.txt", degraded[1])
	assert.Equal(t, "0", degraded[3])
	assert.Equal(t, "", degraded[7])
	assert.Equal(t, "FAIL", degraded[11])
}

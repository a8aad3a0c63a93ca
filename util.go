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
	"fmt"

	"github.com/fatih/structs"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count with two decimals in base 1024 units,
// e.g. "12.00 B" or "1.50 KB".
func FormatFileSize(size int64) string {
	if size == 0 {
		return "0 B"
	}
	s := float64(size)
	for _, unit := range sizeUnits[:len(sizeUnits)-1] {
		if s < 1024 {
			return fmt.Sprintf("%.2f %s", s, unit)
		}
		s /= 1024
	}
	return fmt.Sprintf("%.2f %s", s, sizeUnits[len(sizeUnits)-1])
}

// csvRow projects a record on the CSVColumns.
func csvRow(record EvidenceRecord) []string {
	fields := structs.Map(record)
	row := make([]string, len(CSVColumns))
	for i, column := range CSVColumns {
		if value, ok := fields[column]; ok && value != nil {
			row[i] = fmt.Sprint(value)
		}
	}
	return row
}

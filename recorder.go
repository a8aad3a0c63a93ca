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
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/djherbis/times"
	"github.com/h2non/filetype"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/forensicanalysis/evidencechain/digest"
	"github.com/forensicanalysis/evidencechain/logger"
)

// Defaults for records without explicit values.
const (
	DefaultOperation = "extraction"
	DefaultOperator  = "Android Collector"
	DefaultDeviceID  = "N/A"
)

// Appender stores evidence records.
type Appender interface {
	Append(record EvidenceRecord) error
}

// RecorderOptions configure a Recorder. Zero values fall back to the defaults.
type RecorderOptions struct {
	Fs          afero.Fs
	Operator    string
	DeviceID    string
	ExtraHashes []digest.Algorithm
}

// Result is the outcome of recording a file. Err is set if the record is
// degraded, Record is always filled.
type Result struct {
	Record EvidenceRecord
	Err    error
}

// OK reports whether the file was recorded with digests.
func (r Result) OK() bool {
	return r.Err == nil
}

// The Recorder computes digests of freshly extracted files and appends them to
// the ledger.
type Recorder struct {
	ledger  Appender
	fs      afero.Fs
	digests *digest.Engine
	opts    RecorderOptions
	now     func() time.Time
}

// NewRecorder creates a Recorder writing to the given ledger.
func NewRecorder(ledger Appender, opts RecorderOptions) *Recorder {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Operator == "" {
		opts.Operator = DefaultOperator
	}
	if opts.DeviceID == "" {
		opts.DeviceID = DefaultDeviceID
	}
	return &Recorder{
		ledger:  ledger,
		fs:      opts.Fs,
		digests: digest.New(opts.Fs),
		opts:    opts,
		now:     time.Now,
	}
}

// Record digests the file and appends a PASS record to the ledger. Failures are
// returned as a FAIL record in the Result, the caller's flow is never
// interrupted. FAIL records of missing or unreadable files are appended to the
// ledger too and carry no digests, so readers of the ledger must check
// integrity_check before using sha256. A failing ledger write is only
// reported.
func (r *Recorder) Record(filePath, operation string) Result {
	if operation == "" {
		operation = DefaultOperation
	}

	record, err := r.capture(filePath, operation)
	if err != nil {
		degraded := r.degraded(filePath, operation, err)
		if appendErr := r.ledger.Append(degraded); appendErr != nil {
			logger.Errorf("could not record failure for %s: %v", filePath, appendErr)
		}
		logger.Warnf("evidence for %s recorded as FAIL: %v", filePath, err)
		return Result{Record: degraded, Err: err}
	}

	if err := r.ledger.Append(record); err != nil {
		logger.Errorf("could not record evidence for %s: %v", filePath, err)
		return Result{Record: r.degraded(filePath, operation, err), Err: err}
	}

	logger.WithFields(map[string]interface{}{
		"filename":  record.Filename,
		"operation": record.Operation,
		"sha256":    record.SHA256,
	}).Info("evidence recorded")
	return Result{Record: record}
}

func (r *Recorder) capture(filePath, operation string) (EvidenceRecord, error) {
	info, err := r.fs.Stat(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return EvidenceRecord{}, errors.Wrap(ErrFileNotFound, filePath)
		}
		return EvidenceRecord{}, errors.Wrapf(err, "could not stat %s", filePath)
	}
	if !info.Mode().IsRegular() {
		return EvidenceRecord{}, errors.Wrap(ErrNotRegularFile, filePath)
	}

	algorithms := append([]digest.Algorithm{}, digest.Default...)
	algorithms = append(algorithms, r.opts.ExtraHashes...)
	hashes, err := r.digests.Sum(filePath, algorithms...)
	if err != nil {
		return EvidenceRecord{}, err
	}

	record := EvidenceRecord{
		Timestamp:        r.now().Format(TimeFormat),
		Filename:         filepath.Base(filePath),
		FullPath:         filePath,
		FileSize:         info.Size(),
		FileSizeReadable: FormatFileSize(info.Size()),
		MD5:              hashes[digest.MD5],
		SHA1:             hashes[digest.SHA1],
		SHA256:           hashes[digest.SHA256],
		Operation:        operation,
		Operator:         r.opts.Operator,
		DeviceID:         r.opts.DeviceID,
		IntegrityCheck:   IntegrityPass,
		Notes:            fmt.Sprintf("%s via ADB backup", operation),
		EvidenceID:       NewEvidenceID(),
		MimeType:         r.mimeType(filePath),
		ModifiedTime:     info.ModTime().Format(TimeFormat),
	}

	for _, algorithm := range r.opts.ExtraHashes {
		switch algorithm {
		case digest.MD5, digest.SHA1, digest.SHA256:
			continue
		}
		if record.ExtraHashes == nil {
			record.ExtraHashes = map[string]string{}
		}
		record.ExtraHashes[string(algorithm)] = hashes[algorithm]
	}

	r.addTimes(&record, filePath)
	return record, nil
}

func (r *Recorder) degraded(filePath, operation string, err error) EvidenceRecord {
	return EvidenceRecord{
		Timestamp:      r.now().Format(TimeFormat),
		Filename:       filepath.Base(filePath),
		FullPath:       filePath,
		Operation:      operation,
		Operator:       r.opts.Operator,
		DeviceID:       r.opts.DeviceID,
		IntegrityCheck: IntegrityFail,
		Notes:          fmt.Sprintf("%s via ADB backup", operation),
		Error:          err.Error(),
	}
}

// mimeType sniffs the file header, unknown types are left empty.
func (r *Recorder) mimeType(filePath string) string {
	f, err := r.fs.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	head := make([]byte, 261)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return ""
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

// addTimes adds access, change and birth times when the file is on disk.
func (r *Recorder) addTimes(record *EvidenceRecord, filePath string) {
	if _, ok := r.fs.(*afero.OsFs); !ok {
		return
	}

	ts, err := times.Stat(filePath)
	if err != nil {
		logger.Debugf("could not read times of %s: %v", filePath, err)
		return
	}
	record.AccessedTime = ts.AccessTime().Format(TimeFormat)
	if ts.HasChangeTime() {
		record.ChangedTime = ts.ChangeTime().Format(TimeFormat)
	}
	if ts.HasBirthTime() {
		record.BirthTime = ts.BirthTime().Format(TimeFormat)
	}
}

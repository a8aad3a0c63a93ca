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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/forensicanalysis/evidencechain/digest"
	"github.com/forensicanalysis/evidencechain/logger"
)

// Outcome of a verification.
type Outcome string

const (
	Verified Outcome = "VERIFIED"
	Tampered Outcome = "TAMPERED"
)

// Records gives read access to the ledger.
type Records interface {
	All() ([]EvidenceRecord, error)
}

// VerificationResult compares a file with its reference record.
type VerificationResult struct {
	Status       string  `json:"status"`
	Message      string  `json:"message"`
	OriginalHash string  `json:"original_hash"`
	CurrentHash  string  `json:"current_hash"`
	Match        bool    `json:"match"`
	Outcome      Outcome `json:"outcome"`
	Filename     string  `json:"filename"`
	EvidenceID   string  `json:"evidence_id,omitempty"`
	RecordedAt   string  `json:"recorded_at,omitempty"`
}

// The Verifier recomputes the SHA-256 digest of a file and compares it with the
// most recent PASS record of the same file name.
type Verifier struct {
	ledger  Records
	fs      afero.Fs
	digests *digest.Engine
}

// NewVerifier creates a Verifier. A nil fs reads from the OS.
func NewVerifier(ledger Records, fs afero.Fs) *Verifier {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Verifier{ledger: ledger, fs: fs, digests: digest.New(fs)}
}

// Verify checks a file against the ledger. A hash mismatch is not an error but
// a result with Outcome Tampered.
func (v *Verifier) Verify(filePath string) (*VerificationResult, error) {
	info, err := v.fs.Stat(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(ErrFileNotFound, filePath)
		}
		return nil, errors.Wrapf(err, "could not stat %s", filePath)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Wrap(ErrNotRegularFile, filePath)
	}

	records, err := v.ledger.All()
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(filePath)
	i := latestPass(records, filename)
	if i < 0 {
		return nil, errors.Wrap(ErrNoReferenceRecord, filename)
	}
	reference := records[i]

	current, err := v.digests.SHA256(filePath)
	if err != nil {
		return nil, err
	}

	result := &VerificationResult{
		OriginalHash: reference.SHA256,
		CurrentHash:  current,
		Filename:     filename,
		EvidenceID:   reference.EvidenceID,
		RecordedAt:   reference.Timestamp,
	}
	if current == reference.SHA256 {
		result.Status = "success"
		result.Message = "Integrity verified"
		result.Match = true
		result.Outcome = Verified
		logger.Infof("integrity of %s verified", filePath)
	} else {
		result.Status = "warning"
		result.Message = "TAMPERING DETECTED"
		result.Outcome = Tampered
		logger.WithFields(map[string]interface{}{
			"filename": filename,
			"original": reference.SHA256,
			"current":  current,
		}).Warn("tampering detected")
	}
	return result, nil
}

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
	"github.com/pkg/errors"
)

// Errors of the chain-of-custody components. Tampering is not an error, it is
// reported as a VerificationResult with Outcome Tampered.
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrNotRegularFile    = errors.New("not a regular file")
	ErrLedgerNotFound    = errors.New("no evidence recorded")
	ErrLedgerCorrupt     = errors.New("evidence ledger is corrupt")
	ErrNoReferenceRecord = errors.New("original evidence record not found")
	ErrPersistence       = errors.New("could not persist evidence")
)

// IsNotFound reports whether err means that a file, the ledger or a usable
// ledger document could not be found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrLedgerNotFound) ||
		errors.Is(err, ErrLedgerCorrupt)
}

func persistenceError(what string, err error) error {
	return errors.Wrapf(ErrPersistence, "%s: %v", what, err)
}

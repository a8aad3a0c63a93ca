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

// Package digest computes file digests for evidence records. All requested
// algorithms are fed from a single streaming read, so memory use does not
// depend on the file size.
package digest

import (
	"crypto/md5"  // #nosec
	"crypto/sha1" // #nosec
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"lukechampine.com/blake3"
)

// Algorithm identifies a digest algorithm.
type Algorithm string

// Supported algorithms. MD5 and SHA-1 are kept for compatibility with
// established forensic tooling.
const (
	MD5    Algorithm = "md5"
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
	SHA512 Algorithm = "sha512"
	BLAKE3 Algorithm = "blake3"
)

// Default is the set computed for every evidence record.
var Default = []Algorithm{MD5, SHA1, SHA256}

// ErrUnsupportedAlgorithm is returned for unknown algorithm names.
var ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

const (
	bufferSmallSize      = 32 * 1024
	bufferLargeSize      = 128 * 1024
	largeBufferThreshold = 256 * 1024
)

var bufferSmallPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, bufferSmallSize)
		return &buf
	},
}

var bufferLargePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, bufferLargeSize)
		return &buf
	},
}

func newHash(algorithm Algorithm) (hash.Hash, error) {
	switch algorithm {
	case MD5:
		return md5.New(), nil // #nosec
	case SHA1:
		return sha1.New(), nil // #nosec
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	case BLAKE3:
		return blake3.New(32, nil), nil
	default:
		return nil, errors.Wrap(ErrUnsupportedAlgorithm, string(algorithm))
	}
}

// ParseAlgorithms converts configuration strings like "SHA-256" or "sha1"
// into algorithms.
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	var algorithms []Algorithm
	for _, name := range names {
		algorithm := Algorithm(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", ""))
		if _, err := newHash(algorithm); err != nil {
			return nil, err
		}
		algorithms = append(algorithms, algorithm)
	}
	return algorithms, nil
}

// Engine computes digests of files on a filesystem.
type Engine struct {
	fs afero.Fs
}

// New creates an Engine reading from fs. A nil fs means the OS filesystem.
func New(fs afero.Fs) *Engine {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Engine{fs: fs}
}

// Sum returns the lowercase hex digest of the file for every algorithm.
// Without algorithms the Default set is computed.
func (e *Engine) Sum(path string, algorithms ...Algorithm) (map[Algorithm]string, error) {
	if len(algorithms) == 0 {
		algorithms = Default
	}

	type hasherEntry struct {
		algorithm Algorithm
		h         hash.Hash
	}
	hashers := make([]hasherEntry, 0, len(algorithms))
	seen := make(map[Algorithm]struct{}, len(algorithms))
	for _, algorithm := range algorithms {
		if _, ok := seen[algorithm]; ok {
			continue
		}
		h, err := newHash(algorithm)
		if err != nil {
			return nil, err
		}
		seen[algorithm] = struct{}{}
		hashers = append(hashers, hasherEntry{algorithm: algorithm, h: h})
	}

	file, err := e.fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	defer file.Close()

	bufferPool := &bufferSmallPool
	if info, statErr := file.Stat(); statErr == nil && info.Size() >= largeBufferThreshold {
		bufferPool = &bufferLargePool
	}
	bufferPtr := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(bufferPtr)
	buffer := *bufferPtr

	for {
		n, readErr := file.Read(buffer)
		if n > 0 {
			for i := range hashers {
				hashers[i].h.Write(buffer[:n]) // nolint:errcheck
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, errors.Wrapf(readErr, "could not read %s", path)
		}
	}

	hashes := make(map[Algorithm]string, len(hashers))
	for i := range hashers {
		hashes[hashers[i].algorithm] = hex.EncodeToString(hashers[i].h.Sum(nil))
	}
	return hashes, nil
}

// SHA256 returns the SHA-256 digest of the file.
func (e *Engine) SHA256(path string) (string, error) {
	hashes, err := e.Sum(path, SHA256)
	if err != nil {
		return "", err
	}
	return hashes[SHA256], nil
}

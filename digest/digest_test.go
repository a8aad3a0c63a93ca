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

package digest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Sum(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/hello.txt", []byte("hello world"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/empty.txt", nil, 0644))

	tests := []struct {
		name       string
		path       string
		algorithms []Algorithm
		want       map[Algorithm]string
		wantErr    bool
	}{
		{"Default", "/hello.txt", nil, map[Algorithm]string{
			MD5:    "5eb63bbbe01eeed093cb22bb8f5acdc3",
			SHA1:   "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed",
			SHA256: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		}, false},
		{"Duplicate", "/hello.txt", []Algorithm{SHA256, SHA256}, map[Algorithm]string{
			SHA256: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		}, false},
		{"Empty file", "/empty.txt", []Algorithm{SHA256}, map[Algorithm]string{
			SHA256: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		}, false},
		{"Missing file", "/missing.txt", nil, nil, true},
		{"Unsupported", "/hello.txt", []Algorithm{"crc32"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(fs).Sum(tt.path, tt.algorithms...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_SumMissingIsNotExist(t *testing.T) {
	_, err := New(afero.NewMemMapFs()).Sum("/gone")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestEngine_SumLargeFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := bytes.Repeat([]byte("0123456789abcdef"), 64*1024) // 1 MiB
	require.NoError(t, afero.WriteFile(fs, "/large.bin", content, 0644))

	sum := sha256.Sum256(content)
	got, err := New(fs).SHA256("/large.bin")
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), got)
}

func TestEngine_SHA256Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/calls.txt", []byte("hello world\n"), 0644))
	engine := New(fs)

	first, err := engine.SHA256("/calls.txt")
	require.NoError(t, err)
	second, err := engine.SHA256("/calls.txt")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "a948904f2f0f479b8f8197694b30184b0d2ed1c1cd2a1ec0fb85d299a192a447", first)
}

func TestEngine_Blake3(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a", []byte("abc"), 0644))
	got, err := New(fs).Sum("/a", BLAKE3, SHA512)
	require.NoError(t, err)
	assert.Len(t, got[BLAKE3], 64)
	assert.Len(t, got[SHA512], 128)
}

func TestParseAlgorithms(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		want    []Algorithm
		wantErr bool
	}{
		{"Lower", []string{"md5", "sha1"}, []Algorithm{MD5, SHA1}, false},
		{"STIX style", []string{"SHA-256", " BLAKE3 "}, []Algorithm{SHA256, BLAKE3}, false},
		{"Unknown", []string{"ssdeep"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlgorithms(tt.names)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAlgorithms() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

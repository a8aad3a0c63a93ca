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

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "collected_data", cfg.CollectionRoot)
	assert.Equal(t, "Android Collector", cfg.Operator)
	assert.Equal(t, "N/A", cfg.DeviceID)
	assert.Equal(t, "FR", cfg.ReportPrefix)
}

func TestLoad_File(t *testing.T) {
	dir, err := ioutil.TempDir("", t.Name())
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "evidencechain.yml")
	content := "collection_root: /cases/42\noperator: Lab 3\nextra_hashes: [sha512]\n"
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/cases/42", cfg.CollectionRoot)
	assert.Equal(t, "Lab 3", cfg.Operator)
	assert.Equal(t, []string{"sha512"}, cfg.ExtraHashes)
	assert.Equal(t, "127.0.0.1:8000", cfg.Listen)
}

func TestLoad_Errors(t *testing.T) {
	dir, err := ioutil.TempDir("", t.Name())
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	broken := filepath.Join(dir, "broken.yml")
	require.NoError(t, ioutil.WriteFile(broken, []byte("operator: [unclosed"), 0644))

	tests := []struct {
		name string
		path string
	}{
		{"Missing", filepath.Join(dir, "missing.yml")},
		{"Broken", broken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "EVIDENCECHAIN_COLLECTION_ROOT", EnvName("CollectionRoot"))
	assert.Equal(t, "EVIDENCECHAIN_DEVICE_ID", EnvName("DeviceID"))
}

func Test_applyEnv(t *testing.T) {
	env := map[string]string{
		"EVIDENCECHAIN_DEVICE_ID":    "R58M123ABC",
		"EVIDENCECHAIN_EXTRA_HASHES": "sha512, blake3,",
	}
	cfg := Config{}
	applyEnv(&cfg, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	assert.Equal(t, "R58M123ABC", cfg.DeviceID)
	assert.Equal(t, []string{"sha512", "blake3"}, cfg.ExtraHashes)
	assert.Empty(t, cfg.Operator)
}

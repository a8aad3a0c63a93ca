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
	"context"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"
	"github.com/tidwall/gjson"
)

const ledgerSchemaJSON = `{
  "$id": "https://github.com/forensicanalysis/evidencechain/evidence_log.json",
  "title": "Evidence Ledger",
  "type": "object",
  "required": ["evidence_chain"],
  "properties": {
    "evidence_chain": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["timestamp", "filename", "integrity_check"],
        "properties": {
          "timestamp": {"type": "string"},
          "filename": {"type": "string"},
          "full_path": {"type": "string"},
          "file_size": {"type": "integer", "minimum": 0},
          "md5": {"type": "string", "pattern": "^[0-9a-f]{32}$"},
          "sha1": {"type": "string", "pattern": "^[0-9a-f]{40}$"},
          "sha256": {"type": "string", "pattern": "^[0-9a-f]{64}$"},
          "integrity_check": {"enum": ["PASS", "FAIL"]},
          "evidence_id": {"type": "string", "pattern": "^evidence--"}
        },
        "if": {"properties": {"integrity_check": {"const": "PASS"}}},
        "then": {"required": ["sha256"]}
      }
    }
  }
}`

var ledgerSchema = func() *jsonschema.Schema {
	schema := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(ledgerSchemaJSON), schema); err != nil {
		panic(err)
	}
	return schema
}()

// validateDocument checks the raw ledger document against the ledger schema.
func validateDocument(document []byte) (flaws []string, err error) {
	if !gjson.ValidBytes(document) {
		return []string{"document is not valid json"}, nil
	}
	if !gjson.GetBytes(document, "evidence_chain").IsArray() {
		flaws = append(flaws, "document needs an evidence_chain list")
	}

	errs, err := ledgerSchema.ValidateBytes(context.Background(), document)
	if err != nil {
		return nil, err
	}
	for _, verr := range errs {
		flaws = append(flaws, fmt.Sprintf("failed to validate record: %s", verr))
	}
	return flaws, nil
}

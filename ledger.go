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
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/forensicanalysis/evidencechain/logger"
)

// Ledger locations relative to the collection root.
const (
	ChainDir     = "evidence_chain"
	CSVName      = "evidence_log.csv"
	DocumentName = "evidence_log.json"
	JournalName  = "evidence_log.db"
)

// Stats summarizes the ledger document.
type Stats struct {
	TotalEntries     int    `json:"total_entries"`
	LastUpdate       string `json:"last_update"`
	FilesWithErrors  int    `json:"files_with_errors"`
	HashesCalculated int    `json:"hashes_calculated"`
	JournalEntries   int64  `json:"journal_entries"`
}

type document struct {
	EvidenceChain []EvidenceRecord `json:"evidence_chain"`
}

type rawDocument struct {
	EvidenceChain []json.RawMessage `json:"evidence_chain"`
}

// The Ledger is the append-only chain of custody of a collection root. Every
// record is written to a CSV file, a sqlite journal and a JSON document. Only
// one goroutine writes at a time.
type Ledger struct {
	mu      sync.Mutex
	root    string
	fs      afero.Fs
	journal *journal
}

// OpenLedger opens or creates the ledger below the collection root.
func OpenLedger(root string) (*Ledger, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	fs := afero.NewBasePathFs(afero.NewOsFs(), root)
	if err := fs.MkdirAll(ChainDir, 0755); err != nil {
		return nil, errors.Wrap(err, "could not create evidence folder")
	}

	j, err := openJournal(filepath.Join(root, ChainDir, JournalName))
	if err != nil {
		return nil, err
	}

	return &Ledger{root: root, fs: fs, journal: j}, nil
}

// Root returns the absolute collection root.
func (l *Ledger) Root() string {
	return l.root
}

// Append adds a record to the ledger. The CSV row and journal row are written
// first, the JSON document is replaced last. Entries of a document that fails
// schema validation are kept as they are, a document that is no JSON list at
// all is replaced by a new document holding only this record.
func (l *Ledger) Append(record EvidenceRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, err := json.Marshal(record)
	if err != nil {
		return err
	}
	entries, err := l.documentEntries()
	if err != nil {
		return persistenceError("document", err)
	}

	if err := l.appendCSV(record); err != nil {
		return persistenceError("csv", err)
	}
	if _, err := l.journal.insert(record); err != nil {
		return persistenceError("journal", err)
	}

	if err := l.writeDocument(&rawDocument{EvidenceChain: append(entries, entry)}); err != nil {
		return persistenceError("document", err)
	}

	logger.Debugf("appended %s (%s) to evidence ledger", record.Filename, record.IntegrityCheck)
	return nil
}

// All returns the records of the ledger document in insertion order.
func (l *Ledger) All() ([]EvidenceRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, _, err := l.readDocument()
	if err != nil {
		return nil, err
	}
	return doc.EvidenceChain, nil
}

// Latest returns the most recent PASS record for a file name.
func (l *Ledger) Latest(filename string) (*EvidenceRecord, error) {
	records, err := l.All()
	if err != nil {
		return nil, err
	}
	i := latestPass(records, filename)
	if i < 0 {
		return nil, errors.Wrap(ErrNoReferenceRecord, filename)
	}
	return &records[i], nil
}

// Stats summarizes the ledger document.
func (l *Ledger) Stats() (*Stats, error) {
	_, stats, err := l.Chain()
	return stats, err
}

// Chain returns the records of the ledger document together with their
// statistics, both read from the same version of the document.
func (l *Ledger) Chain() ([]EvidenceRecord, *Stats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, raw, err := l.readDocument()
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{LastUpdate: "N/A"}
	stats.TotalEntries = int(gjson.GetBytes(raw, "evidence_chain.#").Int())
	if stats.TotalEntries > 0 {
		last := strconv.Itoa(stats.TotalEntries - 1)
		stats.LastUpdate = gjson.GetBytes(raw, "evidence_chain."+last+".timestamp").String()
	}
	stats.FilesWithErrors = len(gjson.GetBytes(raw, `evidence_chain.#(integrity_check=="FAIL")#`).Array())
	stats.HashesCalculated = len(gjson.GetBytes(raw, `evidence_chain.#(integrity_check=="PASS")#`).Array())

	stats.JournalEntries, err = l.journal.count()
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not count journal")
	}
	return doc.EvidenceChain, stats, nil
}

// History returns every journal record of a file name in append order.
func (l *Ledger) History(filename string) ([]EvidenceRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.journal.byFilename(filename)
	if err != nil {
		return nil, errors.Wrap(err, "could not read journal")
	}
	return records, nil
}

// Repair rebuilds the JSON document from the journal and returns the number of
// records written. Document entries that never went through Append are not in
// the journal and are dropped.
func (l *Ledger) Repair() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.journal.all()
	if err != nil {
		return 0, errors.Wrap(err, "could not read journal")
	}
	if err := l.writeDocument(&document{EvidenceChain: records}); err != nil {
		return 0, persistenceError("document", err)
	}
	logger.Infof("rebuilt evidence document with %d records", len(records))
	return len(records), nil
}

// Close closes the journal.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.journal.close()
}

func (l *Ledger) appendCSV(record EvidenceRecord) error {
	name := filepath.Join(ChainDir, CSVName)
	f, err := l.fs.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(CSVColumns); err != nil {
			return err
		}
	}
	if err := w.Write(csvRow(record)); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func (l *Ledger) readDocument() (*document, []byte, error) {
	raw, err := afero.ReadFile(l.fs, filepath.Join(ChainDir, DocumentName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, ErrLedgerNotFound
		}
		return nil, nil, errors.Wrap(ErrLedgerCorrupt, err.Error())
	}

	flaws, err := validateDocument(raw)
	if err != nil {
		return nil, nil, errors.Wrap(ErrLedgerCorrupt, err.Error())
	}
	if len(flaws) > 0 {
		return nil, nil, errors.Wrap(ErrLedgerCorrupt, flaws[0])
	}

	doc := &document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, nil, errors.Wrap(ErrLedgerCorrupt, err.Error())
	}
	if doc.EvidenceChain == nil {
		doc.EvidenceChain = []EvidenceRecord{}
	}
	return doc, raw, nil
}

// documentEntries returns the raw entries of the document for an append.
// Entries are kept even if they violate the ledger schema.
func (l *Ledger) documentEntries() ([]json.RawMessage, error) {
	raw, err := afero.ReadFile(l.fs, filepath.Join(ChainDir, DocumentName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	chain := gjson.GetBytes(raw, "evidence_chain")
	if !gjson.ValidBytes(raw) || !chain.IsArray() {
		logger.Warnf("replacing unreadable evidence document")
		return nil, nil
	}

	var entries []json.RawMessage
	chain.ForEach(func(_, value gjson.Result) bool {
		entries = append(entries, json.RawMessage(value.Raw))
		return true
	})
	if flaws, err := validateDocument(raw); err == nil && len(flaws) > 0 {
		logger.Warnf("evidence document has %d schema flaws, keeping %d entries: %s", len(flaws), len(entries), flaws[0])
	}
	return entries, nil
}

// writeDocument replaces the document with a temporary file and a rename.
func (l *Ledger) writeDocument(doc interface{}) error {
	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return err
	}

	name := filepath.Join(ChainDir, DocumentName)
	tmp := name + ".tmp"
	if err := afero.WriteFile(l.fs, tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	return l.fs.Rename(tmp, name)
}

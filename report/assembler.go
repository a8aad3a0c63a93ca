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

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"regexp"
	"sync"
	"time"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/forensicanalysis/evidencechain"
	"github.com/forensicanalysis/evidencechain/logger"
)

// Dir is the report folder relative to the collection root.
const Dir = "forensic_reports"

// ErrReportNotFound is returned for unknown or invalid report ids.
var ErrReportNotFound = errors.New("report not found")

var reportIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Files are the persisted report documents relative to the collection root.
type Files struct {
	JSON string `json:"json"`
	HTML string `json:"html"`
}

// Options configure an Assembler.
type Options struct {
	// Prefix of report ids, "FR" by default.
	Prefix string
	// Operator named in the acquisition details.
	Operator string
}

// The Assembler builds reports from the ledger. Generating reports is
// serialized, so report ids are unique within a collection root.
type Assembler struct {
	mu     sync.Mutex
	ledger evidencechain.Records
	fs     afero.Fs
	opts   Options
	now    func() time.Time
}

// NewAssembler creates an Assembler that writes below the root of fs.
func NewAssembler(ledger evidencechain.Records, fs afero.Fs, opts Options) *Assembler {
	if opts.Prefix == "" {
		opts.Prefix = "FR"
	}
	if opts.Operator == "" {
		opts.Operator = DefaultOperator
	}
	return &Assembler{ledger: ledger, fs: fs, opts: opts, now: time.Now}
}

// Generate builds a report, writes it as JSON and HTML and returns it with the
// paths of both files. A missing ledger yields empty statistics, a corrupt
// ledger is an error. Write failures match evidencechain.ErrPersistence, a
// JSON document written before the HTML failed is not removed.
func (a *Assembler) Generate(data ExtractionData, metadata CaseMetadata) (*Report, *Files, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := mergo.Merge(&metadata, DefaultCase()); err != nil {
		return nil, nil, err
	}

	records, err := a.ledger.All()
	if err != nil {
		if !errors.Is(err, evidencechain.ErrLedgerNotFound) {
			return nil, nil, errors.Wrap(err, "could not read evidence ledger")
		}
		records = nil
	}

	device, err := deviceInformation(data.DeviceInfo)
	if err != nil {
		return nil, nil, err
	}

	now := a.now()
	reportID, err := a.nextID(now)
	if err != nil {
		return nil, nil, err
	}

	mainFindings := data.MainFindings
	if mainFindings == "" {
		mainFindings = "No compromising data detected"
	}

	report := &Report{
		ReportID:          reportID,
		GenerationDate:    now.Format(evidencechain.TimeFormat),
		ReportType:        ReportType,
		CaseReference:     metadata.CaseNumber,
		Investigator:      Investigator,
		Version:           Version,
		CaseDetails:       metadata,
		DeviceInformation: device,
		AcquisitionDetails: AcquisitionDetails{
			Method:           Method,
			Tool:             Tool,
			DateTime:         now.Format("2006-01-02 15:04:05"),
			Operator:         a.opts.Operator,
			HashVerification: HashVerification,
		},
		ArtefactsExtracted: countArtefacts(records),
		EvidenceChain:      evidenceChain(records),
		FindingsSummary:    findingsSummary(data),
		TimelineAnalysis:   timelineAnalysis(data, now.Format(evidencechain.TimeFormat)),
		Conclusions: Conclusions{
			MainFindings:    mainFindings,
			Recommendations: append([]string{}, Recommendations...),
		},
		Disclaimer: Disclaimer,
	}

	files, err := a.save(report, now.Year())
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("generated report %s for case %s", report.ReportID, metadata.CaseNumber)
	return report, files, nil
}

// Open returns the rendered HTML of a report.
func (a *Assembler) Open(reportID string) ([]byte, error) {
	if !reportIDPattern.MatchString(reportID) {
		return nil, errors.Wrap(ErrReportNotFound, reportID)
	}
	b, err := afero.ReadFile(a.fs, path.Join(Dir, reportID+".html"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(ErrReportNotFound, reportID)
		}
		return nil, err
	}
	return b, nil
}

// Load reads the JSON document of a report.
func (a *Assembler) Load(reportID string) (*Report, error) {
	if !reportIDPattern.MatchString(reportID) {
		return nil, errors.Wrap(ErrReportNotFound, reportID)
	}
	b, err := afero.ReadFile(a.fs, path.Join(Dir, reportID+".json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(ErrReportNotFound, reportID)
		}
		return nil, err
	}
	report := &Report{}
	return report, json.Unmarshal(b, report)
}

// nextID returns the timestamp id, a -N suffix is added if a report with
// that id exists already.
func (a *Assembler) nextID(now time.Time) (string, error) {
	base := fmt.Sprintf("%s-%s", a.opts.Prefix, now.Format("20060102-150405"))

	reportID := base
	i := 1
	exists, err := afero.Exists(a.fs, path.Join(Dir, reportID+".json"))
	if err != nil {
		return "", err
	}
	for exists {
		reportID = fmt.Sprintf("%s-%d", base, i)
		i++
		exists, err = afero.Exists(a.fs, path.Join(Dir, reportID+".json"))
		if err != nil {
			return "", err
		}
	}
	return reportID, nil
}

func (a *Assembler) save(report *Report, year int) (*Files, error) {
	if err := a.fs.MkdirAll(Dir, 0755); err != nil {
		return nil, persistenceError(err)
	}

	files := &Files{
		JSON: path.Join(Dir, report.ReportID+".json"),
		HTML: path.Join(Dir, report.ReportID+".html"),
	}

	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return nil, err
	}
	if err := afero.WriteFile(a.fs, files.JSON, buf.Bytes(), 0644); err != nil {
		return nil, persistenceError(err)
	}

	buf.Reset()
	if err := renderHTML(buf, report, year); err != nil {
		return nil, errors.Wrap(err, "could not render report")
	}
	if err := afero.WriteFile(a.fs, files.HTML, buf.Bytes(), 0644); err != nil {
		return nil, persistenceError(err)
	}
	return files, nil
}

// writeError is a failed report write. It matches evidencechain.ErrPersistence.
type writeError struct {
	err error
}

func (e *writeError) Error() string {
	return "could not write report: " + e.err.Error()
}

func (e *writeError) Unwrap() error {
	return e.err
}

func (e *writeError) Is(target error) bool {
	return target == evidencechain.ErrPersistence
}

func persistenceError(err error) error {
	return &writeError{err: err}
}

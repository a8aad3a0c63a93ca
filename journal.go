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
	"encoding/json"
	"fmt"
	"time"

	"crawshaw.io/sqlite"
	"github.com/pkg/errors"
)

const journalVersion = 1
const journalApplicationID = 1701602670

// journal is the sqlite copy of the ledger. Rows are only ever inserted, the
// json column holds the complete record.
type journal struct {
	conn *sqlite.Conn
}

func openJournal(url string) (*journal, error) {
	conn, err := sqlite.OpenConn(url, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open journal %s", url)
	}
	j := &journal{conn: conn}

	if err := j.setup(); err != nil {
		conn.Close() // nolint:errcheck
		return nil, err
	}
	return j, nil
}

func (j *journal) setup() error {
	applicationID, err := pragma(j.conn, "application_id")
	if err != nil {
		return err
	}

	switch applicationID {
	case 0:
		if err := setPragma(j.conn, "application_id", journalApplicationID); err != nil {
			return err
		}
		if err := setPragma(j.conn, "user_version", journalVersion); err != nil {
			return err
		}
		return j.exec("CREATE TABLE IF NOT EXISTS `records` (" +
			"seq INTEGER PRIMARY KEY AUTOINCREMENT, " +
			"evidence_id TEXT, filename TEXT NOT NULL, json TEXT NOT NULL, insert_time TEXT NOT NULL)")
	case journalApplicationID:
		version, err := pragma(j.conn, "user_version")
		if err != nil {
			return err
		}
		if version != journalVersion {
			msg := "wrong file format (user_version is %d, requires %d)"
			return fmt.Errorf(msg, version, journalVersion)
		}
		return nil
	default:
		msg := "wrong file format (application_id is %d, requires %d)"
		return fmt.Errorf(msg, applicationID, journalApplicationID)
	}
}

func pragma(conn *sqlite.Conn, name string) (int64, error) {
	stmt, err := conn.Prepare("PRAGMA " + name)
	if err != nil {
		return 0, err
	}
	_, err = stmt.Step()
	if err != nil {
		return 0, err
	}
	i := stmt.GetInt64(name)
	return i, stmt.Finalize()
}

func setPragma(conn *sqlite.Conn, name string, i int64) error {
	stmt, err := conn.Prepare("PRAGMA " + name + " = " + fmt.Sprint(i))
	if err != nil {
		return err
	}
	_, err = stmt.Step()
	if err != nil {
		return err
	}
	return stmt.Finalize()
}

// insert adds a record and returns its sequence number.
func (j *journal) insert(record EvidenceRecord) (int64, error) {
	b, err := json.Marshal(record)
	if err != nil {
		return 0, err
	}

	query := "INSERT INTO `records` (evidence_id, filename, json, insert_time) VALUES ($id, $filename, $json, $time)"
	stmt, err := j.conn.Prepare(query)
	if err != nil {
		return 0, errors.Wrap(err, fmt.Sprintf("could not prepare statement %s", query))
	}
	stmt.SetText("$id", record.EvidenceID)
	stmt.SetText("$filename", record.Filename)
	stmt.SetText("$json", string(b))
	stmt.SetText("$time", time.Now().UTC().Format(TimeFormat))
	if _, err = stmt.Step(); err != nil {
		return 0, errors.Wrap(err, fmt.Sprint("could not exec statement ", query))
	}
	if err := stmt.Reset(); err != nil {
		return 0, err
	}
	return j.conn.LastInsertRowID(), nil
}

// all returns every journal row in append order.
func (j *journal) all() ([]EvidenceRecord, error) {
	stmt, err := j.conn.Prepare("SELECT json FROM `records` ORDER BY seq")
	if err != nil {
		return nil, err
	}
	return rowsToRecords(stmt)
}

// byFilename returns the custody history of a file name.
func (j *journal) byFilename(filename string) ([]EvidenceRecord, error) {
	stmt, err := j.conn.Prepare("SELECT json FROM `records` WHERE filename = $filename ORDER BY seq")
	if err != nil {
		return nil, err
	}
	stmt.SetText("$filename", filename)
	return rowsToRecords(stmt)
}

func (j *journal) count() (int64, error) {
	stmt, err := j.conn.Prepare("SELECT count(*) AS n FROM `records`")
	if err != nil {
		return 0, err
	}
	if _, err := stmt.Step(); err != nil {
		return 0, err
	}
	n := stmt.GetInt64("n")
	return n, stmt.Finalize()
}

func (j *journal) exec(query string) error {
	stmt, err := j.conn.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Step()
	if err != nil {
		return err
	}

	return stmt.Finalize()
}

func (j *journal) close() error {
	return j.conn.Close()
}

func rowsToRecords(stmt *sqlite.Stmt) (records []EvidenceRecord, err error) {
	records = []EvidenceRecord{}
	for {
		if hasRow, err := stmt.Step(); err != nil {
			return nil, err
		} else if !hasRow {
			break
		}
		var record EvidenceRecord
		if err := json.Unmarshal([]byte(stmt.GetText("json")), &record); err != nil {
			return nil, errors.Wrap(err, "could not decode journal row")
		}
		records = append(records, record)
	}
	return records, stmt.Finalize()
}

// Package fetch downloads quarterly filings from the EDGAR full-index archive
// into the <year>/QTR<q>/ layout the scoring commands read.
package fetch

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// headerLines precede the first record of master.idx.
const headerLines = 11

// IndexRecord is one line of master.idx.
type IndexRecord struct {
	CIK  int
	Name string
	Form string
	// Date is the filing date as YYYYMMDD.
	Date string
	Path string
}

// key identifies filings that would otherwise share a file name.
func (r IndexRecord) key() string {
	return strconv.Itoa(r.CIK) + r.Date + r.Form
}

// FileName is the local name of the dup-th filing (1-based) sharing cik, date
// and form, e.g. 20200331_10-Q_edgar_data_940944_0000940944-20-000014_1.txt.
func (r IndexRecord) FileName(dup int) string {
	name := r.Date + "_" + strings.Replace(r.Form, "/", "-", -1) + "_" + strings.Replace(r.Path, "/", "_", -1)
	return strings.Replace(name, ".txt", "_"+strconv.Itoa(dup)+".txt", -1)
}

// ParseMasterIndex reads the records of a master.idx. Lines that do not have
// exactly five fields or a numeric cik are skipped.
func ParseMasterIndex(r io.Reader) ([]IndexRecord, error) {
	var recs []IndexRecord
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if line <= headerLines {
			continue
		}
		parts := strings.Split(strings.TrimRight(sc.Text(), "\r"), "|")
		if len(parts) != 5 {
			continue
		}
		cik, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		recs = append(recs, IndexRecord{
			CIK:  cik,
			Name: parts[1],
			Form: parts[2],
			Date: strings.Replace(parts[3], "-", "", -1),
			Path: parts[4],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read master index")
	}
	return recs, nil
}

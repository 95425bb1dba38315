// Package filing reads identity out of archive filenames of the form
//
//	<YYYYMMDD>_<FORM>_<free text>_<ENTITY-ID>-<suffix>_<counter>.txt
//
// The free text may itself contain underscores, so the accession element is
// located from the end of the name, just before the dedup counter.
package filing

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	dateLayout   = "20060102"
	outputLayout = "2006-01-02"
	minParts     = 5
)

// Metadata is the identity of one filing. A zero field is null.
type Metadata struct {
	EntityID   string
	FilingDate time.Time
}

func (m Metadata) HasEntity() bool { return m.EntityID != "" }

func (m Metadata) HasDate() bool { return !m.FilingDate.IsZero() }

// Date formats FilingDate as YYYY-MM-DD, or "" when null.
func (m Metadata) Date() string {
	if !m.HasDate() {
		return ""
	}
	return m.FilingDate.Format(outputLayout)
}

// MetadataParseWarning reports the fields that could not be read from a
// filename. The file is still scored.
type MetadataParseWarning struct {
	Name   string
	Fields []string
}

func (w *MetadataParseWarning) Error() string {
	return "filing: cannot read " + strings.Join(w.Fields, ", ") + " from " + w.Name
}

// Parse extracts the entity id and filing date from the base name of path.
// Fields it cannot read are left null and listed in the returned warning.
func Parse(path string) (Metadata, error) {
	name := filepath.Base(path)
	parts := strings.Split(name, "_")
	var (
		m       Metadata
		missing []string
	)

	if t, err := time.Parse(dateLayout, parts[0]); err == nil {
		m.FilingDate = t
	} else {
		missing = append(missing, "date")
	}

	if len(parts) >= minParts {
		accession := parts[len(parts)-2]
		if i := strings.IndexByte(accession, '-'); i > 0 {
			m.EntityID = accession[:i]
		}
	}
	if m.EntityID == "" {
		missing = append(missing, "entity id")
	}

	if len(missing) > 0 {
		return m, &MetadataParseWarning{Name: name, Fields: missing}
	}
	return m, nil
}

// Package export writes the recorded times to the TRZ flat file format
// consumed by the result service: one tab-separated line per record,
// 4-digit zero-padded bib number and HH:MM:SS time.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MSSputnik/RVEZeitmessung/internal/datastore"
	"github.com/MSSputnik/RVEZeitmessung/internal/errors"
	"github.com/MSSputnik/RVEZeitmessung/internal/timecode"
)

// FormatLine renders one TRZ export line for a record.
func FormatLine(record *datastore.TimeRecord) string {
	return fmt.Sprintf("%04d\t%s", record.Number, record.TimeString)
}

// Annotate renders the listing line for a record, marking corrected
// entries and appending their prior times the way the operator display
// did.
func Annotate(record *datastore.TimeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s    %04d", record.TimeString, record.Number)
	if record.Corrected() {
		b.WriteString(" (korrigiert: ")
		b.WriteString(timecode.FormatSeconds(record.Backup1))
		if record.Backup2 != 0 {
			b.WriteString(", ")
			b.WriteString(timecode.FormatSeconds(record.Backup2))
		}
		b.WriteString(")")
	}
	return b.String()
}

// WriteTRZ writes all records to the given path, creating the parent
// directory when missing. Records are written in store order, latest
// time first.
func WriteTRZ(path string, records []datastore.TimeRecord) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(err).
				Component("export").
				Category(errors.CategoryFileIO).
				Context("path", dir).
				Build()
		}
	}

	var b strings.Builder
	for i := range records {
		b.WriteString(FormatLine(&records[i]))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return errors.New(err).
			Component("export").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	return nil
}

package registration

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// utf8BOM lets spreadsheet software detect the encoding so accented names
// render correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{
	"id",
	"firstName",
	"lastName",
	"email",
	"phone",
	"contactConsent",
	"attendanceAttestation",
	"eventId",
	"createdAt",
}

// ExportCSV renders registrations as a CSV document: fixed header row,
// RFC 4180 quoting (values containing comma, quote or newline are wrapped in
// quotes with internal quotes doubled) and a UTF-8 BOM prefix. The output is
// a pure function of the given records.
func ExportCSV(regs []Registration) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, r := range regs {
		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.FirstName,
			r.LastName,
			r.Email,
			r.Phone,
			strconv.FormatBool(r.ContactConsent),
			strconv.FormatBool(r.AttendanceAttestation),
			r.EventID,
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFilename embeds the current date in the download name.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("registrations-%s.csv", now.Format("2006-01-02"))
}

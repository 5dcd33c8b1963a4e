package candidates

import (
	"strings"
	"time"
)

// recordLocation is the timezone candidate timestamps are recorded in.
// Falls back to a fixed UTC-3 offset when the zone database is unavailable.
var recordLocation = loadRecordLocation()

func loadRecordLocation() *time.Location {
	loc, err := time.LoadLocation("America/Fortaleza")
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}

// FormatTimestamp renders a record timestamp in the local dd/mm/yyyy format.
func FormatTimestamp(t time.Time) string {
	return t.In(recordLocation).Format("02/01/2006 15:04:05")
}

// AssembleRecord merges the normalized submission, the submission timestamp
// and the resolved file value into the spreadsheet row. Column layout:
// timestamp, name, email, phone, age, role, experience, motivation, file,
// status.
func AssembleRecord(sub Submission, ts time.Time, fileValue string) Record {
	return Record{
		FormatTimestamp(ts),
		sub.Name,
		strings.ToLower(sub.Email),
		sub.Phone,
		sub.Age,
		sub.Role,
		sub.Experience,
		sub.Motivation,
		fileValue,
		"Novo",
	}
}

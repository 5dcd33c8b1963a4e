package candidates

// Submission is the normalized, validated form input. It is immutable after
// normalization and discarded once the record is assembled.
type Submission struct {
	Name       string
	Email      string
	Phone      string
	Age        int
	Role       string
	Experience string
	Motivation string
}

// FileUpload carries the inbound résumé exactly as received; it is owned by
// the pipeline for the duration of one request and never persisted as-is.
type FileUpload struct {
	RawBase64        string
	DeclaredFilename string
}

// UploadOutcome is the resolved file reference: a link on success, a
// deterministic placeholder on failure. Exactly one of the two is set.
type UploadOutcome struct {
	URL         string
	Placeholder string
	Reason      string
}

// Succeeded reports whether the upload resolved to a real link.
func (o UploadOutcome) Succeeded() bool { return o.URL != "" }

// Value returns what goes into the record's file column.
func (o UploadOutcome) Value() string {
	if o.URL != "" {
		return o.URL
	}
	return o.Placeholder
}

// Record is the row appended to the spreadsheet. Write-once; never mutated
// after assembly.
type Record []any

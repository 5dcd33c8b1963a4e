package filepolicy

import (
	"bytes"

	"github.com/ledongthuc/pdf"

	"recruitment-backend/internal/shared/telemetry"
)

// probePDF does a best-effort structural parse of PDF uploads. A file that
// carries a .pdf name but does not parse is still accepted (operators screen
// résumés by hand); the mismatch is only logged.
func probePDF(fileName, mime string, data []byte) {
	if mime != "application/pdf" {
		return
	}

	defer func() {
		// The parser can panic on hostile input; a probe must never take
		// the request down with it.
		if rec := recover(); rec != nil {
			telemetry.Warn("filepolicy.pdf_probe_panic", map[string]any{
				"file_name": fileName,
				"error":     rec,
			})
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		telemetry.Warn("filepolicy.pdf_probe_failed", map[string]any{
			"file_name": fileName,
			"error":     err.Error(),
		})
		return
	}
	telemetry.Info("filepolicy.pdf_probe", map[string]any{
		"file_name": fileName,
		"pages":     reader.NumPage(),
	})
}

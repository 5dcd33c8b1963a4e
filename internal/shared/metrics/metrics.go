package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	submissionTotal         atomic.Uint64
	submissionRejectedTotal atomic.Uint64
	uploadFallbackTotal     atomic.Uint64
	sheetWriteFailedTotal   atomic.Uint64
)

// IncSubmission increments the accepted-submission counter.
func IncSubmission() {
	submissionTotal.Add(1)
}

// IncSubmissionRejected increments the validation-rejection counter.
func IncSubmissionRejected() {
	submissionRejectedTotal.Add(1)
}

// IncUploadFallback counts submissions whose file upload degraded to a
// placeholder. This is the operator signal for provider outages that the
// fallback policy would otherwise hide.
func IncUploadFallback() {
	uploadFallbackTotal.Add(1)
}

// IncSheetWriteFailed increments the spreadsheet-append failure counter.
func IncSheetWriteFailed() {
	sheetWriteFailedTotal.Add(1)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "submission_total", "Total submissions accepted", submissionTotal.Load())
	writeCounter(&buf, "submission_rejected_total", "Total submissions rejected by validation", submissionRejectedTotal.Load())
	writeCounter(&buf, "upload_fallback_total", "Total uploads degraded to a placeholder", uploadFallbackTotal.Load())
	writeCounter(&buf, "sheet_write_failed_total", "Total spreadsheet append failures", sheetWriteFailedTotal.Load())
	return buf.String()
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

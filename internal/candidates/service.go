package candidates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruitment-backend/internal/filepolicy"
	"recruitment-backend/internal/notify"
	"recruitment-backend/internal/shared/metrics"
	"recruitment-backend/internal/shared/telemetry"
	"recruitment-backend/internal/shared/util"
	"recruitment-backend/internal/storage/sheets"
	"recruitment-backend/internal/storage/upload"
)

// Service runs one submission through validation, upload resolution and the
// spreadsheet append. Requests are independent; the only shared state is the
// read-only configuration the collaborators were built from.
type Service struct {
	Policy   *filepolicy.Policy
	Provider upload.Provider
	Sheet    sheets.Appender
	Notifier notify.Notifier

	// nowFn is swappable for tests; nil means time.Now.
	nowFn func() time.Time
}

// Result is the outcome of a processed submission.
type Result struct {
	Submission Submission
	Outcome    UploadOutcome
	Record     Record
}

// Submit processes one candidature end to end. Validation failures
// short-circuit before any provider call; provider failures degrade to a
// placeholder; a failed spreadsheet append fails the whole request because
// nothing was durably recorded.
func (s *Service) Submit(ctx context.Context, raw RawSubmission, file FileUpload) (Result, error) {
	sub, err := Normalize(raw)
	if err != nil {
		return Result{}, err
	}

	validated, err := s.Policy.Validate(file.DeclaredFilename, file.RawBase64)
	if err != nil {
		return Result{}, err
	}

	slug := util.NameSlug(sub.Name)
	now := s.now()

	outcome := s.resolveUpload(ctx, validated, slug, now)

	record := AssembleRecord(sub, now, outcome.Value())
	if err := s.Sheet.Append(ctx, record); err != nil {
		metrics.IncSheetWriteFailed()
		return Result{}, err
	}

	metrics.IncSubmission()
	telemetry.Info("submission.recorded", map[string]any{
		"role":            sub.Role,
		"upload_resolved": outcome.Succeeded(),
		"provider":        s.Provider.Kind(),
	})

	if s.Notifier != nil {
		s.Notifier.NewCandidature(sub.Name, sub.Email, sub.Phone, sub.Role, outcome.Value())
	}

	return Result{Submission: sub, Outcome: outcome, Record: record}, nil
}

// resolveUpload attempts the configured provider exactly once. Any failure
// becomes a placeholder: a partial record with the file pending beats losing
// the candidate's submission.
func (s *Service) resolveUpload(ctx context.Context, file filepolicy.ValidatedFile, slug string, now time.Time) UploadOutcome {
	ref, err := s.Provider.Upload(ctx, upload.Request{
		Data:          file.Data,
		FileName:      file.FileName,
		MimeType:      file.MimeType,
		CandidateSlug: slug,
	})
	if err != nil {
		reason := failureReason(err)
		metrics.IncUploadFallback()
		telemetry.Error("upload.fallback", map[string]any{
			"provider":  s.Provider.Kind(),
			"reason":    reason,
			"error":     err.Error(),
			"file_name": file.FileName,
		})
		return UploadOutcome{
			Placeholder: Placeholder(file.FileName, slug, now, reason),
			Reason:      reason,
		}
	}
	return UploadOutcome{URL: ref.URL}
}

// Placeholder builds the deterministic value recorded when upload fails,
// carrying everything an operator needs to re-attach the file by hand.
func Placeholder(fileName, slug string, ts time.Time, reason string) string {
	return fmt.Sprintf("pendente: %s | %s | %s | %s", fileName, slug, FormatTimestamp(ts), reason)
}

// failureReason maps a provider error to a short diagnostic category. The
// full error goes to the logs, never into the spreadsheet.
func failureReason(err error) string {
	switch {
	case errors.Is(err, upload.ErrUnavailable):
		return "provedor não configurado"
	case errors.Is(err, upload.ErrRejected):
		return "provedor recusou o envio"
	case errors.Is(err, upload.ErrMalformedResponse):
		return "resposta inesperada do provedor"
	default:
		return "falha no envio"
	}
}

func (s *Service) now() time.Time {
	if s.nowFn != nil {
		return s.nowFn()
	}
	return time.Now()
}

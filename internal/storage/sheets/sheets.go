// Package sheets wraps the spreadsheet the candidate records land in. The
// pipeline only ever appends rows; everything else about the sheet is
// managed elsewhere.
package sheets

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// ErrWriteFailed marks a failed append. The candidate's data was not durably
// recorded, so callers must surface this instead of degrading.
var ErrWriteFailed = errors.New("spreadsheet write failed")

// Appender appends one candidate row to the spreadsheet.
type Appender interface {
	Append(ctx context.Context, row []any) error
}

// GoogleSheets appends rows through the Sheets API.
type GoogleSheets struct {
	svc        *sheetsapi.Service
	sheetID    string
	writeRange string
}

// NewGoogleSheets builds the production appender from a service account key.
// Extra client options override the default authentication for tests.
func NewGoogleSheets(ctx context.Context, serviceAccountJSON, sheetID, writeRange string, opts ...option.ClientOption) (*GoogleSheets, error) {
	if sheetID == "" {
		return nil, fmt.Errorf("sheets: sheet id not configured")
	}
	if writeRange == "" {
		writeRange = "Candidatos!A2:J"
	}

	if len(opts) == 0 {
		if serviceAccountJSON == "" {
			return nil, fmt.Errorf("sheets: service account key not configured")
		}
		jwtCfg, err := google.JWTConfigFromJSON([]byte(serviceAccountJSON), sheetsapi.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("sheets: parse service account key: %w", err)
		}
		opts = []option.ClientOption{option.WithTokenSource(jwtCfg.TokenSource(ctx))}
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: build service: %w", err)
	}

	return &GoogleSheets{
		svc:        svc,
		sheetID:    sheetID,
		writeRange: writeRange,
	}, nil
}

// Append writes one row after the existing data.
func (g *GoogleSheets) Append(ctx context.Context, row []any) error {
	_, err := g.svc.Spreadsheets.Values.
		Append(g.sheetID, g.writeRange, &sheetsapi.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return fmt.Errorf("sheets append: status %d: %s: %w", gerr.Code, gerr.Message, ErrWriteFailed)
		}
		return fmt.Errorf("sheets append: %v: %w", err, ErrWriteFailed)
	}
	return nil
}

var _ Appender = (*GoogleSheets)(nil)

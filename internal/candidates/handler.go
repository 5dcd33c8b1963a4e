package candidates

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitment-backend/internal/shared/metrics"
	"recruitment-backend/internal/shared/server/respond"
	"recruitment-backend/internal/storage/sheets"
	"recruitment-backend/internal/validation"
)

// maxBodyBytes bounds the whole JSON body: a 5 MiB résumé grows by ~4/3 in
// base64, plus the text fields.
const maxBodyBytes = 8 << 20

// Handler wires the submission endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the candidature routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/candidaturas", h.submit)
}

func (h *Handler) submit(c *gin.Context) {
	if c.Request.ContentLength > maxBodyBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "Payload muito grande",
			"os dados enviados excedem o limite permitido")
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "Payload muito grande",
				"os dados enviados excedem o limite permitido")
			return
		}
		respond.Error(c, http.StatusBadRequest, "Requisição inválida", "corpo JSON malformado")
		return
	}

	// The outcome is resolved even when the upload degraded to a
	// placeholder; the client sees success either way.
	if _, err := h.Svc.Submit(c.Request.Context(), req.raw(), req.file()); err != nil {
		h.renderError(c, err)
		return
	}

	respond.OK(c, successResponse{
		Success: true,
		Message: "Candidatura enviada com sucesso!",
	})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		metrics.IncSubmissionRejected()
		respond.Error(c, http.StatusBadRequest, verr.Message, verr.Code)
	case errors.Is(err, sheets.ErrWriteFailed):
		respond.Error(c, http.StatusInternalServerError,
			"Erro ao processar sua candidatura", "falha ao registrar os dados")
	default:
		respond.Error(c, http.StatusInternalServerError, "Erro interno do servidor", "")
	}
}

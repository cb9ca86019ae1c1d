package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/listafacil/backend/internal/domain"
)

// Reconciler is the slice of the usecase layer the HTTP delivery needs.
type Reconciler interface {
	Reconcile(ctx context.Context, items []domain.CandidateItem) ([]domain.MatchResult, domain.BatchSummary, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	reconciler Reconciler
}

// NewHandler creates a new HTTP handler
func NewHandler(reconciler Reconciler) *Handler {
	return &Handler{reconciler: reconciler}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "listafacil-backend",
		"version": "1.0.0",
	})
}

// reconcileRequest is the extraction collaborator's payload shape. It is
// mapped to the strict domain model here, at the boundary, so the matching
// core never branches on payload shape.
type reconcileRequest struct {
	Items []itemPayload `json:"items"`
}

type itemPayload struct {
	Quantity      int              `json:"quantity"`
	Name          string           `json:"name"`
	Code          string           `json:"code"`
	DeclaredPrice *decimal.Decimal `json:"declaredPrice"`
	Subject       string           `json:"subject"`
	Position      *positionPayload `json:"position"`
}

type positionPayload struct {
	Page   int     `json:"page"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Region string  `json:"region"`
}

// ReconcileList matches an extracted materials list against the catalog and
// returns enriched results plus a summary. Contract violations in the input
// reject the whole batch with 400 before any catalog call.
func (h *Handler) ReconcileList(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object with an items array"})
		return
	}

	results, summary, err := h.reconciler.Reconcile(c.Request.Context(), toDomainItems(req.Items))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidBatch) || errors.Is(err, domain.ErrMissingName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"summary": summary,
	})
}

// toDomainItems maps payload items to domain items, applying the contract's
// defaults (quantity 1 when absent or nonsense).
func toDomainItems(payload []itemPayload) []domain.CandidateItem {
	if payload == nil {
		return nil
	}

	items := make([]domain.CandidateItem, len(payload))
	for i, p := range payload {
		quantity := p.Quantity
		if quantity < 1 {
			quantity = 1
		}

		var position *domain.Position
		if p.Position != nil {
			position = &domain.Position{
				Page:   p.Position.Page,
				X:      p.Position.X,
				Y:      p.Position.Y,
				Region: p.Position.Region,
			}
		}

		items[i] = domain.CandidateItem{
			Quantity:      quantity,
			Name:          p.Name,
			Code:          p.Code,
			DeclaredPrice: p.DeclaredPrice,
			Subject:       p.Subject,
			Position:      position,
		}
	}
	return items
}

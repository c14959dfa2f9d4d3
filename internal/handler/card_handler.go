package handler

import (
	"errors"
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgCardNotFound    = "Card not found"
	msgInvalidCardData = "Invalid card data"
)

type CardHandler struct {
	repo repository.CardRepositoryInterface
	log  *zap.Logger
}

func NewCardHandler(repo repository.CardRepositoryInterface, log *zap.Logger) *CardHandler {
	return &CardHandler{
		repo: repo,
		log:  log,
	}
}

type CreateCardRequest struct {
	ColumnID    int64   `json:"column_id" validate:"required,gt=0"`
	UserID      int64   `json:"user_id" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description"`
}

type UpdateCardRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
}

// GetByColumnID godoc
// @Summary      List the cards of a column
// @Tags         Cards
// @Produce      json
// @Security     BearerAuth
// @Param        column_id path int true "Column id"
// @Success      200 {array}  model.Card
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/cards/{column_id} [get]
func (h *CardHandler) GetByColumnID(c *gin.Context) {
	columnID, ok := idParam(c, "column_id")
	if !ok {
		return
	}

	cards, err := h.repo.GetByColumnID(c.Request.Context(), columnID)
	if err != nil {
		internalError(c, h.log, "get cards", err)
		return
	}
	if len(cards) == 0 {
		abortWithError(c, http.StatusNotFound, msgCardNotFound)
		return
	}

	c.JSON(http.StatusOK, cards)
}

// Create godoc
// @Summary      Create a card
// @Tags         Cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateCardRequest true "Card"
// @Success      201 {object} model.Card
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	var req CreateCardRequest
	if !bindAndValidate(c, h.log, &req, msgInvalidCardData) {
		return
	}

	card := &model.Card{
		ColumnID:    req.ColumnID,
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.repo.Create(c.Request.Context(), card); err != nil {
		internalError(c, h.log, "create card", err)
		return
	}

	c.JSON(http.StatusCreated, card)
}

// Update godoc
// @Summary      Update a card
// @Description  An absent or empty description leaves the stored one unchanged.
// @Tags         Cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Card id"
// @Param        request body UpdateCardRequest true "Card fields"
// @Success      200 {object} model.Card
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/cards/{id} [put]
func (h *CardHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if !bindAndValidate(c, h.log, &req, msgInvalidCardData) {
		return
	}

	description := req.Description
	if description != nil && *description == "" {
		description = nil
	}

	card, err := h.repo.Update(c.Request.Context(), id, req.Title, description)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			abortWithError(c, http.StatusNotFound, msgCardNotFound)
			return
		}
		internalError(c, h.log, "update card", err)
		return
	}

	c.JSON(http.StatusOK, card)
}

// Delete godoc
// @Summary      Delete a card
// @Tags         Cards
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Card id"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		internalError(c, h.log, "delete card", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Card deleted successfully"})
}

package handler

import (
	"errors"
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgColumnNotFound = "Column not found"

// ColumnHandler serves columns keyed by their owner. Update and delete apply to
// every column of the user named in the path.
type ColumnHandler struct {
	repo repository.ColumnRepositoryInterface
	log  *zap.Logger
}

func NewColumnHandler(repo repository.ColumnRepositoryInterface, log *zap.Logger) *ColumnHandler {
	return &ColumnHandler{
		repo: repo,
		log:  log,
	}
}

type CreateColumnRequest struct {
	Title  string `json:"title" validate:"required,min=1"`
	UserID int64  `json:"user_id" validate:"required,gt=0"`
}

type UpdateColumnRequest struct {
	Title string `json:"title" validate:"required"`
}

// GetByUserID godoc
// @Summary      List a user's columns
// @Tags         Columns
// @Produce      json
// @Param        user_id path int true "Owner id"
// @Success      200 {array}  model.Column
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/columns/{user_id} [get]
func (h *ColumnHandler) GetByUserID(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}

	columns, err := h.repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		internalError(c, h.log, "get columns", err)
		return
	}
	if len(columns) == 0 {
		abortWithError(c, http.StatusNotFound, msgColumnNotFound)
		return
	}

	c.JSON(http.StatusOK, columns)
}

// Create godoc
// @Summary      Create a column
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Param        request body CreateColumnRequest true "Column"
// @Success      201 {object} model.Column
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/columns [post]
func (h *ColumnHandler) Create(c *gin.Context) {
	var req CreateColumnRequest
	if !bindAndValidate(c, h.log, &req, "Invalid column data") {
		return
	}

	column := &model.Column{
		Title:  req.Title,
		UserID: req.UserID,
	}
	if err := h.repo.Create(c.Request.Context(), column); err != nil {
		internalError(c, h.log, "create column", err)
		return
	}

	c.JSON(http.StatusCreated, column)
}

// Update godoc
// @Summary      Rename a user's columns
// @Description  Sets the title of every column owned by the user and returns the first updated row.
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Param        user_id path int true "Owner id"
// @Param        request body UpdateColumnRequest true "New title"
// @Success      200 {object} model.Column
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/columns/{user_id} [put]
func (h *ColumnHandler) Update(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}

	var req UpdateColumnRequest
	if !bindAndValidate(c, h.log, &req, "Invalid column data") {
		return
	}

	columns, err := h.repo.UpdateTitleByUserID(c.Request.Context(), userID, req.Title)
	if err != nil {
		if errors.Is(err, repository.ErrColumnNotFound) {
			abortWithError(c, http.StatusNotFound, msgColumnNotFound)
			return
		}
		internalError(c, h.log, "update columns", err)
		return
	}

	c.JSON(http.StatusOK, columns[0])
}

// Delete godoc
// @Summary      Delete a user's columns
// @Tags         Columns
// @Produce      json
// @Param        user_id path int true "Owner id"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/columns/{user_id} [delete]
func (h *ColumnHandler) Delete(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.repo.DeleteByUserID(c.Request.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrColumnNotFound) {
			abortWithError(c, http.StatusNotFound, msgColumnNotFound)
			return
		}
		internalError(c, h.log, "delete columns", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Column deleted successfully"})
}

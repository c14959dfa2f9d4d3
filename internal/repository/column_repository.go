package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ColumnRepository addresses writes by owner: update and delete touch every
// column of the given user.
type ColumnRepository struct {
	db *gorm.DB
}

type ColumnRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID int64) ([]model.Column, error)
	Create(ctx context.Context, column *model.Column) error
	UpdateTitleByUserID(ctx context.Context, userID int64, title string) ([]model.Column, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}

var _ ColumnRepositoryInterface = (*ColumnRepository)(nil)

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) GetByUserID(ctx context.Context, userID int64) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&columns).Error
	return columns, err
}

func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Create(column).Error
}

// UpdateTitleByUserID returns the updated rows, or ErrColumnNotFound when the
// user owns no columns.
func (r *ColumnRepository) UpdateTitleByUserID(ctx context.Context, userID int64, title string) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Model(&columns).
		Clauses(clause.Returning{}).
		Where("user_id = ?", userID).
		Update("title", title).Error
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, ErrColumnNotFound
	}
	return columns, nil
}

func (r *ColumnRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Column{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrColumnNotFound
	}
	return nil
}

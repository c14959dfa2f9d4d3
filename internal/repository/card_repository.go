package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CardRepository struct {
	db *gorm.DB
}

type CardRepositoryInterface interface {
	GetByColumnID(ctx context.Context, columnID int64) ([]model.Card, error)
	Create(ctx context.Context, card *model.Card) error
	Update(ctx context.Context, id int64, title string, description *string) (*model.Card, error)
	Delete(ctx context.Context, id int64) error
}

var _ CardRepositoryInterface = (*CardRepository)(nil)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// GetByColumnID retrieves all cards in a specific column
func (r *CardRepository) GetByColumnID(ctx context.Context, columnID int64) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).Where("column_id = ?", columnID).Order("id").Find(&cards).Error
	return cards, err
}

// Create adds a new card to the database
func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// Update sets the title, and the description only when one is given.
func (r *CardRepository) Update(ctx context.Context, id int64, title string, description *string) (*model.Card, error) {
	updates := map[string]interface{}{"title": title}
	if description != nil {
		updates["description"] = *description
	}

	var cards []model.Card
	err := r.db.WithContext(ctx).Model(&cards).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, ErrCardNotFound
	}
	return &cards[0], nil
}

// Delete removes a card by its ID. Affected rows are not inspected, so
// deleting a missing card succeeds.
func (r *CardRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Card{}, "id = ?", id).Error
}

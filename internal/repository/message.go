package repository

import (
	"context"
	"errors"

	"thaichat/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for message ledger operations.
// Ownership is an authorization concern: the ledger enforces it for delete
// at the handler level, never here.
type MessageRepository interface {
	// List returns the most recent limit messages, oldest of the window first.
	List(ctx context.Context, limit int) ([]models.Message, error)
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	Create(ctx context.Context, message *models.Message) error
	Update(ctx context.Context, message *models.Message) error
	Delete(ctx context.Context, id int64) error
}

// gormMessageRepository implements MessageRepository over a gorm database
type gormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a database-backed message repository
func NewGormMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) List(ctx context.Context, limit int) ([]models.Message, error) {
	var messages []models.Message
	query := r.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	// Fetched newest-first for the LIMIT; flip back to creation order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *gormMessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *gormMessageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *gormMessageRepository) Update(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Save(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *gormMessageRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Message{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Message", id)
	}
	return nil
}

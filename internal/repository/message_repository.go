package repository

import (
	"github.com/yukikurage/workmatch-api/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create stores a new message
func (r *GormMessageRepository) Create(msg *models.Message) error {
	return translate(r.db.Create(msg).Error)
}

// FindByID finds a message by ID
func (r *GormMessageRepository) FindByID(id uint64) (*models.Message, error) {
	var msg models.Message
	if err := r.db.First(&msg, id).Error; err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

// ListByUser lists messages sent or received by a user, newest first
func (r *GormMessageRepository) ListByUser(userID uint64) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListConversation lists messages exchanged between two users, oldest first
func (r *GormMessageRepository) ListConversation(userA, userB uint64) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
		userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead sets the read flag of a message
func (r *GormMessageRepository) MarkRead(id uint64) error {
	result := r.db.Model(&models.Message{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(id); err != nil {
			return err
		}
	}
	return nil
}

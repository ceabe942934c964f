package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Vladyslav2123/triply-sub001/models"

	"gorm.io/gorm"
)

type MessageService struct {
	DB *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{DB: db}
}

// Send creates a message from sender to recipient, optionally in the
// context of a reservation the sender is party to.
func (s *MessageService) Send(sender *models.User, recipientID uint, body string, reservationID *uint) (*models.Message, error) {
	if recipientID == sender.ID {
		return nil, errors.New("cannot_message_self")
	}

	var recipient models.User
	if err := s.DB.First(&recipient, recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("recipient_not_found")
		}
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}

	if reservationID != nil {
		var reservation models.Reservation
		if err := s.DB.First(&reservation, *reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("reservation_not_found")
			}
			return nil, fmt.Errorf("failed to load reservation: %w", err)
		}
	}

	message := &models.Message{
		SenderID:      sender.ID,
		RecipientID:   recipientID,
		ReservationID: reservationID,
		Body:          body,
	}
	if err := s.DB.Create(message).Error; err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return message, nil
}

// Conversation returns both directions of a two-user thread, oldest
// first.
func (s *MessageService) Conversation(userID, otherID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := s.DB.
		Preload("Sender").
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return messages, nil
}

// MarkRead stamps all unread messages from otherID to userID.
func (s *MessageService) MarkRead(userID, otherID uint) error {
	now := time.Now().UTC()
	return s.DB.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND read_at IS NULL", otherID, userID).
		Update("read_at", now).Error
}

// Inbox returns the user's received messages, newest first.
func (s *MessageService) Inbox(userID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := s.DB.
		Preload("Sender").
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to load inbox: %w", err)
	}
	return messages, nil
}

package services

import (
	"errors"
	"fmt"

	"github.com/Vladyslav2123/triply-sub001/models"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// Charge records a payment for the full reservation total and moves
// the reservation to paid. An idempotency key collision returns the
// already-recorded payment instead of charging twice.
func (s *PaymentService) Charge(payer *models.User, reservationID uint, method, idempotencyKey string) (*models.Payment, error) {
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	var existing models.Payment
	err := s.DB.Where("idempotency_key = ?", idempotencyKey).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check payment: %w", err)
	}

	var payment *models.Payment
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("reservation_not_found")
			}
			return err
		}
		if reservation.GuestID != payer.ID {
			return errors.New("not_reservation_guest")
		}
		if !models.CanTransitionReservation(reservation.Status, models.ReservationPaid) {
			return fmt.Errorf("invalid_transition: %s -> %s", reservation.Status, models.ReservationPaid)
		}

		payment = &models.Payment{
			ReservationID:  reservationID,
			PayerID:        payer.ID,
			Amount:         reservation.TotalPrice,
			Currency:       reservation.Currency,
			Method:         method,
			Status:         models.PaymentSucceeded,
			IdempotencyKey: idempotencyKey,
		}
		if err := tx.Create(payment).Error; err != nil {
			var mysqlErr *mysql.MySQLError
			if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
				// Raced with a concurrent retry carrying the same key.
				return tx.Where("idempotency_key = ?", idempotencyKey).First(payment).Error
			}
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if err := tx.Model(&reservation).Update("status", models.ReservationPaid).Error; err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return payment, nil
}

// Refund marks a succeeded payment refunded and moves the reservation
// to refunded.
func (s *PaymentService) Refund(actor *models.User, paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("payment_not_found")
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if payment.Status != models.PaymentSucceeded {
		return nil, errors.New("payment_not_refundable")
	}
	if !actor.IsAdmin() {
		return nil, errors.New("admin_required")
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&payment).Update("status", models.PaymentRefunded).Error; err != nil {
			return err
		}
		return tx.Model(&models.Reservation{}).
			Where("id = ?", payment.ReservationID).
			Update("status", models.ReservationRefunded).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	payment.Status = models.PaymentRefunded
	return &payment, nil
}

// ListForReservation returns a reservation's payments.
func (s *PaymentService) ListForReservation(reservationID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.
		Where("reservation_id = ?", reservationID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return payments, nil
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vladyslav2123/triply-sub001/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationService owns the booking write path and the reservation
// lifecycle.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// Quote is a priced stay before booking.
type Quote struct {
	Nights          int    `json:"nights"`
	Subtotal        int64  `json:"subtotal"`
	DiscountPercent int    `json:"discount_percent"`
	Total           int64  `json:"total"`
	Currency        string `json:"currency"`
}

// QuoteListingStay prices [checkIn, checkOut) against the listing's
// base price, per-date overrides, and weekly/monthly discounts.
// overrides must cover the same listing; missing dates use the base
// price.
func QuoteListingStay(listing *models.Listing, overrides []models.ListingAvailability, checkIn, checkOut time.Time) (Quote, error) {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		return Quote{}, errors.New("invalid_date_range")
	}
	if listing.MinStayNights > 0 && nights < listing.MinStayNights {
		return Quote{}, errors.New("below_min_stay")
	}
	if listing.MaxStayNights > 0 && nights > listing.MaxStayNights {
		return Quote{}, errors.New("above_max_stay")
	}

	byDate := make(map[string]models.ListingAvailability, len(overrides))
	for _, o := range overrides {
		byDate[o.Date.Format("2006-01-02")] = o
	}

	var subtotal int64
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		price := listing.PricePerNight
		if o, ok := byDate[d.Format("2006-01-02")]; ok {
			if !o.IsAvailable {
				return Quote{}, errors.New("dates_unavailable")
			}
			if o.PriceOverride != nil {
				price = *o.PriceOverride
			}
		}
		subtotal += price
	}

	discount := 0
	switch {
	case nights >= 28 && listing.MonthlyDiscount > 0:
		discount = listing.MonthlyDiscount
	case nights >= 7 && listing.WeeklyDiscount > 0:
		discount = listing.WeeklyDiscount
	}

	total := subtotal * int64(100-discount) / 100
	return Quote{
		Nights:          nights,
		Subtotal:        subtotal,
		DiscountPercent: discount,
		Total:           total,
		Currency:        listing.Currency,
	}, nil
}

// CreateListingReservation books a listing for a guest. The listing
// row is locked for the duration of the transaction so two concurrent
// bookings of the same dates cannot both pass the conflict check.
func (s *ReservationService) CreateListingReservation(guest *models.User, listingID uint, checkIn, checkOut time.Time, guests int) (*models.Reservation, error) {
	if guests < 1 {
		guests = 1
	}

	var reservation *models.Reservation
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("listing_not_found")
			}
			return err
		}
		if !listing.IsPublished() {
			return errors.New("listing_not_published")
		}
		if listing.HostID == guest.ID {
			return errors.New("cannot_book_own_listing")
		}
		if guests > listing.NumberOfGuests {
			return errors.New("too_many_guests")
		}

		var existing []models.Reservation
		if err := tx.
			Where("reservationable_type = ? AND reservationable_id = ? AND status IN ?",
				models.ReservationableListing, listingID, blockingStatuses()).
			Where("check_out >= ? AND check_in <= ?", checkIn, checkOut).
			Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to load reservations: %w", err)
		}
		if HasDateConflict(existing, checkIn, checkOut) {
			return errors.New("dates_conflict")
		}

		var overrides []models.ListingAvailability
		if err := tx.
			Where("listing_id = ? AND date >= ? AND date < ?", listingID, checkIn, checkOut).
			Find(&overrides).Error; err != nil {
			return fmt.Errorf("failed to load availability: %w", err)
		}

		quote, err := QuoteListingStay(&listing, overrides, checkIn, checkOut)
		if err != nil {
			return err
		}

		reservation = &models.Reservation{
			GuestID:             guest.ID,
			ReservationableID:   listingID,
			ReservationableType: models.ReservationableListing,
			ReferenceCode:       newReferenceCode(),
			CheckIn:             checkIn,
			CheckOut:            checkOut,
			NumberOfGuests:      guests,
			TotalPrice:          quote.Total,
			Currency:            quote.Currency,
			Status:              models.ReservationPending,
		}
		if err := tx.Create(reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return reservation, nil
}

// CreateExperienceReservation books an experience slot, decrementing
// the slot's remaining capacity under a row lock.
func (s *ReservationService) CreateExperienceReservation(guest *models.User, experienceID uint, date time.Time, guests int, privateGroup bool) (*models.Reservation, error) {
	if guests < 1 {
		guests = 1
	}

	var reservation *models.Reservation
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var exp models.Experience
		if err := tx.First(&exp, experienceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("experience_not_found")
			}
			return err
		}
		if !exp.IsPublished() {
			return errors.New("experience_not_published")
		}
		if exp.HostID == guest.ID {
			return errors.New("cannot_book_own_experience")
		}
		if guests < exp.MinGroupSize {
			return errors.New("below_min_group_size")
		}
		if exp.MaxGroupSize > 0 && guests > exp.MaxGroupSize {
			return errors.New("above_max_group_size")
		}

		var slot models.ExperienceAvailability
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("experience_id = ? AND date = ?", experienceID, date).
			First(&slot).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("slot_not_found")
			}
			return err
		}
		if !slot.IsAvailable {
			return errors.New("slot_unavailable")
		}
		if slot.RemainingCapacity != nil {
			if *slot.RemainingCapacity < guests {
				return errors.New("slot_full")
			}
			remaining := *slot.RemainingCapacity - guests
			if err := tx.Model(&slot).Update("remaining_capacity", remaining).Error; err != nil {
				return fmt.Errorf("failed to update capacity: %w", err)
			}
		}

		perPerson := exp.PricePerPerson
		if slot.PriceOverride != nil {
			perPerson = *slot.PriceOverride
		}
		total := perPerson * int64(guests)
		if privateGroup && exp.PrivateGroupPrice > 0 {
			total = exp.PrivateGroupPrice
		}

		reservation = &models.Reservation{
			GuestID:             guest.ID,
			ReservationableID:   experienceID,
			ReservationableType: models.ReservationableExperience,
			ReferenceCode:       newReferenceCode(),
			CheckIn:             date,
			CheckOut:            date.Add(time.Duration(exp.DurationMinutes) * time.Minute),
			NumberOfGuests:      guests,
			TotalPrice:          total,
			Currency:            exp.Currency,
			Status:              models.ReservationPending,
		}
		if err := tx.Create(reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return reservation, nil
}

// UpdateStatus moves a reservation through its lifecycle, enforcing
// both the transition table and who may perform each move.
func (s *ReservationService) UpdateStatus(reservationID uint, actor *models.User, target string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation_not_found")
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}

	hostID, err := s.entityHost(reservation.ReservationableType, reservation.ReservationableID)
	if err != nil {
		return nil, err
	}

	isGuest := actor.ID == reservation.GuestID
	isHost := actor.ID == hostID || actor.IsAdmin()

	switch target {
	case models.ReservationCancelledByGuest:
		if !isGuest {
			return nil, errors.New("not_reservation_guest")
		}
	case models.ReservationCancelledByHost, models.ReservationConfirmed,
		models.ReservationCompleted, models.ReservationNoShow, models.ReservationRefunded:
		if !isHost {
			return nil, errors.New("not_reservation_host")
		}
	case models.ReservationPaid:
		if !isGuest && !isHost {
			return nil, errors.New("not_reservation_party")
		}
	default:
		return nil, errors.New("invalid_status")
	}

	if !models.CanTransitionReservation(reservation.Status, target) {
		return nil, fmt.Errorf("invalid_transition: %s -> %s", reservation.Status, target)
	}

	if err := s.DB.Model(&reservation).Update("status", target).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	reservation.Status = target
	return &reservation, nil
}

// ListForGuest returns the guest's reservations, newest first.
func (s *ReservationService) ListForGuest(guestID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.DB.
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}
	return reservations, nil
}

// ListForListing returns a listing's reservations for its host.
func (s *ReservationService) ListForListing(listingID uint, actor *models.User) ([]models.Reservation, error) {
	hostID, err := s.entityHost(models.ReservationableListing, listingID)
	if err != nil {
		return nil, err
	}
	if actor.ID != hostID && !actor.IsAdmin() {
		return nil, errors.New("not_listing_owner")
	}

	var reservations []models.Reservation
	if err := s.DB.
		Preload("Guest").
		Where("reservationable_type = ? AND reservationable_id = ?", models.ReservationableListing, listingID).
		Order("check_in ASC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}
	return reservations, nil
}

// GetByID loads one reservation, visible to its guest, the host of the
// booked entity, or an admin.
func (s *ReservationService) GetByID(reservationID uint, actor *models.User) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.Preload("Guest").First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation_not_found")
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}

	hostID, err := s.entityHost(reservation.ReservationableType, reservation.ReservationableID)
	if err != nil {
		return nil, err
	}
	if actor.ID != reservation.GuestID && actor.ID != hostID && !actor.IsAdmin() {
		return nil, errors.New("reservation_not_found")
	}
	return &reservation, nil
}

func (s *ReservationService) entityHost(entityType string, entityID uint) (uint, error) {
	switch entityType {
	case models.ReservationableListing:
		var listing models.Listing
		if err := s.DB.Select("id", "host_id").First(&listing, entityID).Error; err != nil {
			return 0, errors.New("listing_not_found")
		}
		return listing.HostID, nil
	case models.ReservationableExperience:
		var exp models.Experience
		if err := s.DB.Select("id", "host_id").First(&exp, entityID).Error; err != nil {
			return 0, errors.New("experience_not_found")
		}
		return exp.HostID, nil
	}
	return 0, errors.New("unsupported_entity_type")
}

func newReferenceCode() string {
	return "TRP-" + strings.ToUpper(uuid.NewString()[:8])
}

package create_reservation

import (
	"fmt"
	"time"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

// validateRequest checks the draft before anything is persisted
func validateRequest(req *Request) error {
	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	slot := domain.Slot{Date: req.Date, Hour: req.Hour}
	if !slot.IsCanonical() {
		return fmt.Errorf("%w: hour %d is not a bookable time", ErrInvalidInput, req.Hour)
	}

	price, ok := domain.PriceFor(req.NumberOfGuests, req.NumberOfTubs)
	if !ok {
		return fmt.Errorf("%w: %d guests with %d tubs is not a bookable combination",
			ErrInvalidInput, req.NumberOfGuests, req.NumberOfTubs)
	}
	if req.Price != price {
		return fmt.Errorf("%w: price does not match the selected combination", ErrInvalidInput)
	}

	for field, value := range map[string]string{
		"firstName":   req.FirstName,
		"lastName":    req.LastName,
		"phoneNumber": req.PhoneNumber,
		"email":       req.Email,
		"address":     req.Address,
		"city":        req.City,
		"countryCode": req.CountryCode,
		"postCode":    req.PostCode,
	} {
		if value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
		}
	}

	if req.Requirements != nil && len(*req.Requirements) > domain.MaxRequirementsLength {
		return fmt.Errorf("%w: requirements must be at most %d characters",
			ErrInvalidInput, domain.MaxRequirementsLength)
	}

	return nil
}

// validateDate checks the picked date against the no-same-day rule and the
// booking horizon
func validateDate(dateKey string, now time.Time, policy domain.BookingPolicy) error {
	day, err := time.ParseInLocation(domain.DateFormat, dateKey, policy.Location)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	today, err := time.ParseInLocation(domain.DateFormat, domain.DateKey(now, policy.Location), policy.Location)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !day.After(today) {
		return ErrInvalidDate
	}
	if day.After(today.AddDate(0, 0, policy.HorizonDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrInvalidDate, policy.HorizonDays)
	}
	return nil
}

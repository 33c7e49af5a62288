package notifications

import (
	"fmt"
	"strconv"

	"github.com/kamillakovacs/craftbeerspa/internal/domain"
)

// Config selects the provider templates and addresses used for each
// notification kind
type Config struct {
	OperatorEmail       string
	ConfirmedTemplateHU string
	ConfirmedTemplateEN string
	ChangedTemplateHU   string
	ChangedTemplateEN   string
	CanceledTemplateHU  string
	CanceledTemplateEN  string
	OperatorTemplate    string
	ReservationBaseURL  string
}

const (
	templateConfirmed = "confirmed"
	templateChanged   = "changed"
	templateCanceled  = "canceled"
	templateOperator  = "operator"
)

func (c Config) confirmedTemplate(locale string) string {
	if locale == "en-US" {
		return c.ConfirmedTemplateEN
	}
	return c.ConfirmedTemplateHU
}

func (c Config) changedTemplate(locale string) string {
	if locale == "en-US" {
		return c.ChangedTemplateEN
	}
	return c.ChangedTemplateHU
}

func (c Config) canceledTemplate(locale string) string {
	if locale == "en-US" {
		return c.CanceledTemplateEN
	}
	return c.CanceledTemplateHU
}

func subject(kind, locale string) string {
	hu := locale != "en-US"
	switch kind {
	case templateConfirmed:
		if hu {
			return "Foglalás visszaigazolása - Craft Beer Spa"
		}
		return "Reservation confirmed - Craft Beer Spa"
	case templateChanged:
		if hu {
			return "Foglalás módosítva - Craft Beer Spa"
		}
		return "Reservation updated - Craft Beer Spa"
	case templateCanceled:
		if hu {
			return "Foglalás lemondva - Craft Beer Spa"
		}
		return "Reservation canceled - Craft Beer Spa"
	default:
		return "New reservation - Craft Beer Spa"
	}
}

// templateVariables builds the personalization data shared by every template
func (c Config) templateVariables(res *domain.Reservation) map[string]string {
	return map[string]string{
		"name":           res.Customer.FirstName + " " + res.Customer.LastName,
		"date":           res.Slot.Date,
		"time":           fmt.Sprintf("%02d:00", res.Slot.Hour),
		"numberOfGuests": strconv.Itoa(res.NumberOfGuests),
		"numberOfTubs":   strconv.Itoa(res.NumberOfTubs),
		"price":          strconv.FormatFloat(res.Price, 'f', 0, 64),
		"reservationUrl": c.ReservationBaseURL + res.PaymentID,
	}
}

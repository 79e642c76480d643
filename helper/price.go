package helper

import (
	"errors"

	"github.com/0mgABear/crowdwatch/model"

	"gorm.io/gorm"
)

// ErrPricingUnavailable is returned when the price list has no active entry
// for a name the engine needs. Money-affecting paths must abort on it, never
// substitute a guess.
var ErrPricingUnavailable = errors.New("pricing unavailable")

// GetActivePrice looks up the active catalog entry by exact name, inside the
// caller's transaction so a price change applies to new transactions
// immediately and is never served from process state.
func GetActivePrice(tx *gorm.DB, name string) (float64, error) {
	var product model.Product
	err := tx.Where("name = ? AND active = ?", name, true).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrPricingUnavailable
		}
		return 0, err
	}
	return product.Price, nil
}

// CheckinTotal prices a check-in: first-hour rate for hour one, subsequent
// rate for the rest, times the party size.
func CheckinTotal(firstHour, subsequentHour float64, hours, pax int) float64 {
	perPerson := firstHour + float64(hours-1)*subsequentHour
	return perPerson * float64(pax)
}

// ExtensionTotal prices an extension across the selected seats.
func ExtensionTotal(extensionHour float64, seatCount, addHours int) float64 {
	return float64(seatCount) * float64(addHours) * extensionHour
}

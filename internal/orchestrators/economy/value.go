package economy

import (
	"github.com/packvault/collection-api/internal/clients/catalog"
)

// Sale values by catalog level. The current form's level decides the value,
// so an evolved instance sells for more than it was acquired as.
const (
	saleValueRookie   int64 = 50
	saleValueChampion int64 = 150
	saleValueUltimate int64 = 400
	saleValueMega     int64 = 1000
	saleValueDefault  int64 = 25
)

// SaleValue returns the coin value for selling a card of the given catalog
// level. Unrecognized levels get the floor value.
func SaleValue(level string) int64 {
	switch level {
	case catalog.LevelRookie:
		return saleValueRookie
	case catalog.LevelChampion:
		return saleValueChampion
	case catalog.LevelUltimate:
		return saleValueUltimate
	case catalog.LevelMega:
		return saleValueMega
	default:
		return saleValueDefault
	}
}

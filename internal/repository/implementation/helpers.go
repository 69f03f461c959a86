package implementation

import (
	"collabnote-be/internal/repository/specification"

	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	return specification.All(specs).Apply(db)
}

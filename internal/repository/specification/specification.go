package specification

import "gorm.io/gorm"

// Specification narrows a query. Apply only builds; it never executes.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// All applies specs in order, skipping nil entries.
type All []Specification

func (s All) Apply(db *gorm.DB) *gorm.DB {
	for _, spec := range s {
		if spec == nil {
			continue
		}
		db = spec.Apply(db)
	}
	return db
}

package specification

import "gorm.io/gorm"

// Specification is a composable query predicate. Repositories apply each one
// in turn, so callers combine filters without the repository growing a
// method per combination.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

package specification

import "gorm.io/gorm"

// MetadataOnly restricts document queries to the listing columns; content is
// never part of a listing surface.
type MetadataOnly struct{}

func (s MetadataOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Select("id", "title", "source", "created_at")
}

// OrderByRecency orders most recent first, insertion order (higher id)
// breaking created_at ties.
type OrderByRecency struct{}

func (s OrderByRecency) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

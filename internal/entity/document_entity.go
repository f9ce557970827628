package entity

import (
	"time"
)

// Document is a stored knowledge unit: the unit of retrieval and grounding.
type Document struct {
	Id        uint
	Title     string
	Content   string
	Source    string
	CreatedAt time.Time
}

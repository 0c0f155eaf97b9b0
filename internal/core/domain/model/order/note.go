package order

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
)

type Note struct {
	id        kernel.UUID
	text      string
	author    string
	createdAt time.Time
}

func RestoreNote(id kernel.UUID, text, author string, createdAt time.Time) *Note {
	return &Note{id: id, text: text, author: author, createdAt: createdAt}
}

func (n *Note) ID() kernel.UUID { return n.id }
func (n *Note) Text() string { return n.text }
func (n *Note) Author() string { return n.author }
func (n *Note) CreatedAt() time.Time { return n.createdAt }

package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var (
	ErrAddNoteCommandIsNotConstructed = errors.New("AddNoteCommand must be created via NewAddNoteCommand constructor")
	ErrNoteTextIsRequired             = errors.New("note text is required")
)

type AddNoteCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	text    string
	author  string

	guard guard.ConstructorGuard
}

func NewAddNoteCommand(orderID kernel.UUID, text, author string) (AddNoteCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AddNoteCommand{}, err
	}
	if strings.TrimSpace(text) == "" {
		return AddNoteCommand{}, ErrNoteTextIsRequired
	}
	return AddNoteCommand{
		orderID: orderID,
		text:    text,
		author:  strings.TrimSpace(author),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AddNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddNoteCommandIsNotConstructed)
}

func (c AddNoteCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AddNoteCommand) Text() string {
	return c.text
}

func (c AddNoteCommand) Author() string {
	return c.author
}

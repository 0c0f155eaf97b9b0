package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

type AddNoteCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAddNoteCommandHandler(uowFactory OrderUoWFactory) AddNoteCommandHandler {
	return AddNoteCommandHandler{uowFactory: uowFactory}
}

func (h AddNoteCommandHandler) Handle(ctx context.Context, cmd AddNoteCommand) (*order.ServiceOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.ServiceOrder) error {
		_, err := o.AddNote(cmd.Text(), cmd.Author())
		return err
	})
}

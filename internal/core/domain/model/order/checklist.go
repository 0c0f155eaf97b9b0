package order

import (
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

// ChecklistItem is one inspection step of an order.
type ChecklistItem struct {
	id      kernel.UUID
	label   string
	checked bool
}

func NewChecklistItem(label string) (*ChecklistItem, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, errs.NewValueIsRequiredError("label")
	}
	return &ChecklistItem{id: kernel.NewUUID(), label: label}, nil
}

func RestoreChecklistItem(id kernel.UUID, label string, checked bool) *ChecklistItem {
	return &ChecklistItem{id: id, label: label, checked: checked}
}

func (c *ChecklistItem) ID() kernel.UUID {
	return c.id
}

func (c *ChecklistItem) Label() string {
	return c.label
}

func (c *ChecklistItem) Checked() bool {
	return c.checked
}

func (c *ChecklistItem) toggle() {
	c.checked = !c.checked
}

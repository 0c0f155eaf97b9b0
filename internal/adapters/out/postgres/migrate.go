package postgres

import (
	"fmt"

	"workshop/internal/adapters/out/postgres/financeledger"
	"workshop/internal/adapters/out/postgres/idempotencyrepo"
	"workshop/internal/adapters/out/postgres/orderrepo"
	"workshop/internal/adapters/out/postgres/outboxrepo"
	"workshop/internal/adapters/out/postgres/stockledger"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. It is safe to run on every start.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.ChecklistItemDTO{},
		&orderrepo.TimeLogDTO{},
		&orderrepo.NoteDTO{},
		&stockledger.PartDTO{},
		&stockledger.MovementDTO{},
		&financeledger.TransactionDTO{},
		&idempotencyrepo.KeyDTO{},
		&outboxrepo.MessageDTO{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err = db.Exec(financeledger.ActiveIncomeIndex).Error; err != nil {
		return fmt.Errorf("create active income index: %w", err)
	}
	return nil
}

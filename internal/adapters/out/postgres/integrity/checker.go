// Package integrity audits the stock and finance ledgers against the orders
// they settle. It reads only and can run against a live database.
package integrity

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Rule string

const (
	// RuleStockBalance: a part's quantity equals the sum of its movements.
	RuleStockBalance Rule = "stock_balance"
	// RuleCompletedIncome: a completed order has exactly one active income
	// equal to its total value.
	RuleCompletedIncome Rule = "completed_income"
	// RuleOpenIncome: an order that is not completed has no active income.
	RuleOpenIncome Rule = "open_income"
	// RuleOpenDebits: an order that is not completed holds no unreversed
	// completion debits.
	RuleOpenDebits Rule = "open_debits"
)

type Violation struct {
	Rule     Rule   `json:"rule"`
	EntityID string `json:"entityId"`
	Detail   string `json:"detail"`
}

type Report struct {
	PartsChecked  int         `json:"partsChecked"`
	OrdersChecked int         `json:"ordersChecked"`
	Violations    []Violation `json:"violations"`
}

func (r Report) OK() bool {
	return len(r.Violations) == 0
}

type Checker struct {
	db *gorm.DB
}

func NewChecker(db *gorm.DB) *Checker {
	return &Checker{db: db}
}

// Run evaluates every rule inside one repeatable-read snapshot, so writes
// committed while it runs cannot produce false positives.
func (c *Checker) Run(ctx context.Context) (Report, error) {
	var report Report
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL REPEATABLE READ READ ONLY").Error; err != nil {
			return err
		}
		if err := tx.Raw("SELECT COUNT(*) FROM parts").Scan(&report.PartsChecked).Error; err != nil {
			return err
		}
		if err := tx.Raw("SELECT COUNT(*) FROM service_orders").Scan(&report.OrdersChecked).Error; err != nil {
			return err
		}

		checks := []func(*gorm.DB) ([]Violation, error){
			stockBalance,
			completedIncome,
			openIncome,
			openDebits,
		}
		for _, check := range checks {
			found, err := check(tx)
			if err != nil {
				return err
			}
			report.Violations = append(report.Violations, found...)
		}
		return nil
	})
	if err != nil {
		return Report{}, fmt.Errorf("integrity check: %w", err)
	}
	return report, nil
}

func stockBalance(tx *gorm.DB) ([]Violation, error) {
	rows, err := tx.Raw(`
		SELECT p.id, p.sku, p.quantity, COALESCE(SUM(m.delta), 0)
		FROM parts p
		LEFT JOIN stock_movements m ON m.part_id = p.id
		GROUP BY p.id, p.sku, p.quantity
		HAVING p.quantity <> COALESCE(SUM(m.delta), 0)
		ORDER BY p.sku`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Violation
	for rows.Next() {
		var (
			id, sku       string
			quantity, sum int
		)
		if err = rows.Scan(&id, &sku, &quantity, &sum); err != nil {
			return nil, err
		}
		out = append(out, Violation{
			Rule:     RuleStockBalance,
			EntityID: id,
			Detail:   fmt.Sprintf("part %s has quantity %d, movements sum to %d", sku, quantity, sum),
		})
	}
	return out, rows.Err()
}

func completedIncome(tx *gorm.DB) ([]Violation, error) {
	rows, err := tx.Raw(`
		SELECT o.id, o.total_value, COUNT(t.id), COALESCE(SUM(t.amount), 0)
		FROM service_orders o
		LEFT JOIN financial_transactions t
		       ON t.order_id = o.id AND t.type = 'INCOME' AND t.status <> 'VOID'
		WHERE o.status = 'COMPLETED'
		GROUP BY o.id, o.total_value
		ORDER BY o.id`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Violation
	for rows.Next() {
		var (
			id            string
			total, amount decimal.Decimal
			count         int
		)
		if err = rows.Scan(&id, &total, &count, &amount); err != nil {
			return nil, err
		}
		switch {
		case count != 1:
			out = append(out, Violation{
				Rule:     RuleCompletedIncome,
				EntityID: id,
				Detail:   fmt.Sprintf("completed order has %d active incomes", count),
			})
		case !amount.Equal(total):
			out = append(out, Violation{
				Rule:     RuleCompletedIncome,
				EntityID: id,
				Detail:   fmt.Sprintf("income %s differs from order total %s", amount.StringFixed(2), total.StringFixed(2)),
			})
		}
	}
	return out, rows.Err()
}

func openIncome(tx *gorm.DB) ([]Violation, error) {
	rows, err := tx.Raw(`
		SELECT o.id, o.status, COUNT(t.id)
		FROM service_orders o
		JOIN financial_transactions t
		  ON t.order_id = o.id AND t.type = 'INCOME' AND t.status <> 'VOID'
		WHERE o.status <> 'COMPLETED'
		GROUP BY o.id, o.status
		ORDER BY o.id`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Violation
	for rows.Next() {
		var (
			id, status string
			count      int
		)
		if err = rows.Scan(&id, &status, &count); err != nil {
			return nil, err
		}
		out = append(out, Violation{
			Rule:     RuleOpenIncome,
			EntityID: id,
			Detail:   fmt.Sprintf("%s order has %d active incomes", status, count),
		})
	}
	return out, rows.Err()
}

func openDebits(tx *gorm.DB) ([]Violation, error) {
	rows, err := tx.Raw(`
		SELECT o.id, o.status, COUNT(m.id)
		FROM service_orders o
		JOIN stock_movements m
		  ON m.order_id = o.id AND m.reason = 'ORDER_COMPLETION'
		WHERE o.status <> 'COMPLETED'
		  AND NOT EXISTS (SELECT 1 FROM stock_movements r WHERE r.reversal_of = m.id)
		GROUP BY o.id, o.status
		ORDER BY o.id`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Violation
	for rows.Next() {
		var (
			id, status string
			count      int
		)
		if err = rows.Scan(&id, &status, &count); err != nil {
			return nil, err
		}
		out = append(out, Violation{
			Rule:     RuleOpenDebits,
			EntityID: id,
			Detail:   fmt.Sprintf("%s order holds %d unreversed completion debits", status, count),
		})
	}
	return out, rows.Err()
}

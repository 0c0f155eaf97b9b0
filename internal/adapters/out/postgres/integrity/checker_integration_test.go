package integrity_test

import (
	"context"
	"testing"
	"time"

	"workshop/internal/adapters/out/postgres/financeledger"
	"workshop/internal/adapters/out/postgres/integrity"
	"workshop/internal/adapters/out/postgres/orderrepo"
	"workshop/internal/adapters/out/postgres/pgtest"
	"workshop/internal/adapters/out/postgres/stockledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CheckerIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	checker  *integrity.Checker
	now      time.Time
}

func (suite *CheckerIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *CheckerIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.checker = integrity.NewChecker(suite.database.DB)
	suite.now = time.Now().UTC()
}

func (suite *CheckerIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *CheckerIntegrationTestSuite) insertPart(quantity int, deltas ...int) uuid.UUID {
	id := uuid.New()
	suite.Require().NoError(suite.database.DB.Create(&stockledger.PartDTO{
		ID:        id,
		SKU:       "SKU-" + id.String()[:8],
		Name:      "impeller",
		Quantity:  quantity,
		Price:     decimal.RequireFromString("10"),
		Cost:      decimal.RequireFromString("4"),
		CreatedAt: suite.now,
	}).Error)
	for _, d := range deltas {
		suite.Require().NoError(suite.database.DB.Create(&stockledger.MovementDTO{
			ID:        uuid.New(),
			PartID:    id,
			Delta:     d,
			Reason:    "STOCK_RECEIPT",
			CreatedAt: suite.now,
		}).Error)
	}
	return id
}

func (suite *CheckerIntegrationTestSuite) insertOrder(status string, total string) uuid.UUID {
	id := uuid.New()
	suite.Require().NoError(suite.database.DB.Create(&orderrepo.OrderDTO{
		ID:          id,
		BoatID:      "BOAT-1",
		Description: "annual service",
		Status:      status,
		TotalValue:  decimal.RequireFromString(total),
		Version:     1,
		CreatedAt:   suite.now,
		UpdatedAt:   suite.now,
	}).Error)
	return id
}

func (suite *CheckerIntegrationTestSuite) insertIncome(orderID uuid.UUID, amount string, status string) {
	suite.Require().NoError(suite.database.DB.Create(&financeledger.TransactionDTO{
		ID:        uuid.New(),
		OrderID:   &orderID,
		Type:      "INCOME",
		Category:  "service_order",
		Amount:    decimal.RequireFromString(amount),
		Status:    status,
		CreatedAt: suite.now,
	}).Error)
}

func (suite *CheckerIntegrationTestSuite) rules(report integrity.Report) []integrity.Rule {
	out := make([]integrity.Rule, 0, len(report.Violations))
	for _, v := range report.Violations {
		out = append(out, v.Rule)
	}
	return out
}

func (suite *CheckerIntegrationTestSuite) TestConsistentDatabasePasses() {
	suite.insertPart(7, 10, -3)
	completed := suite.insertOrder("COMPLETED", "120.00")
	suite.insertIncome(completed, "80.00", "VOID")
	suite.insertIncome(completed, "120.00", "PAID")
	reopened := suite.insertOrder("IN_PROGRESS", "50.00")
	suite.insertIncome(reopened, "50.00", "VOID")

	report, err := suite.checker.Run(context.Background())

	suite.Require().NoError(err)
	suite.True(report.OK(), report.Violations)
	suite.Equal(1, report.PartsChecked)
	suite.Equal(2, report.OrdersChecked)
}

func (suite *CheckerIntegrationTestSuite) TestStockDrift() {
	id := suite.insertPart(5, 10, -3)

	report, err := suite.checker.Run(context.Background())

	suite.Require().NoError(err)
	suite.Require().Len(report.Violations, 1)
	suite.Equal(integrity.RuleStockBalance, report.Violations[0].Rule)
	suite.Equal(id.String(), report.Violations[0].EntityID)
}

func (suite *CheckerIntegrationTestSuite) TestCompletedOrderIncome() {
	suite.insertOrder("COMPLETED", "99.00")
	wrongAmount := suite.insertOrder("COMPLETED", "99.00")
	suite.insertIncome(wrongAmount, "90.00", "PAID")

	report, err := suite.checker.Run(context.Background())

	suite.Require().NoError(err)
	suite.Equal([]integrity.Rule{integrity.RuleCompletedIncome, integrity.RuleCompletedIncome}, suite.rules(report))
}

func (suite *CheckerIntegrationTestSuite) TestOpenOrderWithIncomeOrDebits() {
	partID := suite.insertPart(4, 5)
	canceled := suite.insertOrder("CANCELED", "10.00")
	suite.insertIncome(canceled, "10.00", "PAID")

	reopened := suite.insertOrder("IN_PROGRESS", "10.00")
	suite.Require().NoError(suite.database.DB.Create(&stockledger.MovementDTO{
		ID:        uuid.New(),
		PartID:    partID,
		OrderID:   &reopened,
		Delta:     -1,
		Reason:    "ORDER_COMPLETION",
		CreatedAt: suite.now,
	}).Error)

	report, err := suite.checker.Run(context.Background())

	suite.Require().NoError(err)
	suite.ElementsMatch([]integrity.Rule{integrity.RuleOpenIncome, integrity.RuleOpenDebits}, suite.rules(report))
}

func TestCheckerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CheckerIntegrationTestSuite))
}

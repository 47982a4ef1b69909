package summary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"meubolso/internal/models"
	"meubolso/internal/repositories/ledger"
	"meubolso/internal/repositories/sqlconnect"
	"meubolso/internal/testdb"
	"meubolso/pkg/utils"
)

func record(id int, txType, amount string, day int, category *models.CategorySummary) ledger.TransactionRecord {
	return ledger.TransactionRecord{
		Transaction: models.Transaction{
			ID:         id,
			WalletID:   1,
			Type:       txType,
			Amount:     decimal.RequireFromString(amount),
			OccurredAt: time.Date(2025, 11, day, 10, 0, 0, 0, time.UTC),
		},
		Category: category,
		Wallet:   models.WalletSummary{ID: 1, Name: "Carteira"},
	}
}

func TestBuildTotals(t *testing.T) {
	records := []ledger.TransactionRecord{
		record(1, models.TypeIncome, "1000.00", 1, nil),
		record(2, models.TypeExpense, "250.50", 5, &models.CategorySummary{ID: 3, Name: "Mercado"}),
	}

	result := Build(records)

	if !result.Income.Equal(decimal.RequireFromString("1000.00")) {
		t.Errorf("expected income 1000.00, got %s", result.Income)
	}
	if !result.Expense.Equal(decimal.RequireFromString("250.50")) {
		t.Errorf("expected expense 250.50, got %s", result.Expense)
	}
	if !result.Balance.Equal(decimal.RequireFromString("749.50")) {
		t.Errorf("expected balance 749.50, got %s", result.Balance)
	}
	if len(result.Transactions) != 2 {
		t.Errorf("expected 2 listed transactions, got %d", len(result.Transactions))
	}
}

func TestBuildTransferExcludedFromSums(t *testing.T) {
	records := []ledger.TransactionRecord{
		record(1, models.TypeIncome, "100.00", 1, nil),
		record(2, models.TypeTransfer, "999.00", 2, nil),
	}

	result := Build(records)

	if !result.Income.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("expected transfer out of income, got %s", result.Income)
	}
	if !result.Expense.IsZero() {
		t.Errorf("expected transfer out of expense, got %s", result.Expense)
	}
	if len(result.Transactions) != 2 {
		t.Errorf("expected transfer to be listed, got %d transactions", len(result.Transactions))
	}
	if len(result.DailyChart) != 1 {
		t.Errorf("expected transfer out of the daily chart, got %+v", result.DailyChart)
	}
}

func TestBuildCategoryChart(t *testing.T) {
	mercado := &models.CategorySummary{ID: 3, Name: "Mercado"}
	records := []ledger.TransactionRecord{
		record(1, models.TypeExpense, "30.00", 1, mercado),
		record(2, models.TypeExpense, "12.50", 2, nil),
		record(3, models.TypeExpense, "20.00", 3, mercado),
		record(4, models.TypeIncome, "500.00", 3, mercado),
	}

	result := Build(records)

	if len(result.CategoriesChart) != 2 {
		t.Fatalf("expected 2 category buckets, got %+v", result.CategoriesChart)
	}
	if result.CategoriesChart[0].Name != "Mercado" ||
		!result.CategoriesChart[0].Value.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("unexpected first bucket: %+v", result.CategoriesChart[0])
	}
	if result.CategoriesChart[1].Name != UncategorizedLabel ||
		!result.CategoriesChart[1].Value.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("unexpected uncategorized bucket: %+v", result.CategoriesChart[1])
	}
}

func TestBuildDailyChartSortedAndSigned(t *testing.T) {
	records := []ledger.TransactionRecord{
		record(1, models.TypeExpense, "40.00", 20, nil),
		record(2, models.TypeIncome, "100.00", 3, nil),
		record(3, models.TypeExpense, "25.00", 3, nil),
	}

	result := Build(records)

	if len(result.DailyChart) != 2 {
		t.Fatalf("expected 2 days, got %+v", result.DailyChart)
	}
	if result.DailyChart[0].Day != 3 ||
		!result.DailyChart[0].Value.Equal(decimal.RequireFromString("75.00")) {
		t.Errorf("unexpected day 3 bucket: %+v", result.DailyChart[0])
	}
	if result.DailyChart[1].Day != 20 ||
		!result.DailyChart[1].Value.Equal(decimal.RequireFromString("-40.00")) {
		t.Errorf("unexpected day 20 bucket: %+v", result.DailyChart[1])
	}
}

// Two runs over the same rows must produce identical projections.
func TestBuildIdempotent(t *testing.T) {
	records := []ledger.TransactionRecord{
		record(1, models.TypeIncome, "1000.00", 1, nil),
		record(2, models.TypeExpense, "250.50", 5, &models.CategorySummary{ID: 3, Name: "Mercado"}),
		record(3, models.TypeTransfer, "10.00", 6, nil),
	}

	first := Build(records)
	second := Build(records)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got\n%+v\n%+v", first, second)
	}
}

func authedRequest(target string, userID int) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := context.WithValue(req.Context(), utils.ContextKey("userId"), userID)
	return req.WithContext(ctx)
}

func TestMonthHandlerValidation(t *testing.T) {
	sqlconnect.DB = testdb.New(t)
	defer func() { sqlconnect.DB = nil }()

	cases := []struct {
		name   string
		target string
		want   int
	}{
		{"missing params", "/summary", http.StatusBadRequest},
		{"missing year", "/summary?month=5", http.StatusBadRequest},
		{"month zero", "/summary?month=0&year=2025", http.StatusBadRequest},
		{"month thirteen", "/summary?month=13&year=2025", http.StatusBadRequest},
		{"year out of range", "/summary?month=5&year=10000", http.StatusBadRequest},
		{"valid", "/summary?month=5&year=2025", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			MonthHandler(w, authedRequest(tc.target, 1))
			if w.Code != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, w.Code)
			}
		})
	}
}

package summary

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"meubolso/internal/api/middlewares"
	"meubolso/internal/models"
	"meubolso/internal/repositories/ledger"
	"meubolso/internal/repositories/sqlconnect"
	"meubolso/pkg/utils"
)

// UncategorizedLabel groups expense rows that have no category.
const UncategorizedLabel = "Sem categoria"

type CategoryTotal struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type DailyTotal struct {
	Day   int             `json:"day"`
	Value decimal.Decimal `json:"value"`
}

type transactionItem struct {
	ID          int                     `json:"id"`
	Type        string                  `json:"type"`
	Amount      decimal.Decimal         `json:"amount"`
	OccurredAt  time.Time               `json:"occurredAt"`
	Description string                  `json:"description,omitempty"`
	WalletID    int                     `json:"walletId"`
	Category    *models.CategorySummary `json:"category"`
}

type Result struct {
	Income          decimal.Decimal   `json:"income"`
	Expense         decimal.Decimal   `json:"expense"`
	Balance         decimal.Decimal   `json:"balance"`
	CategoriesChart []CategoryTotal   `json:"categoriesChart"`
	DailyChart      []DailyTotal      `json:"dailyChart"`
	Transactions    []transactionItem `json:"transactions"`
}

// Build derives the monthly projection from the fetched rows. It is pure:
// the same rows in the same order always produce the same result, including
// chart ordering (categories in first-appearance order, days ascending).
func Build(records []ledger.TransactionRecord) Result {
	income := decimal.Zero
	expense := decimal.Zero

	categoryOrder := []string{}
	categoryTotals := map[string]decimal.Decimal{}
	dailyTotals := map[int]decimal.Decimal{}

	items := []transactionItem{}

	for _, rec := range records {
		t := rec.Transaction

		switch t.Type {
		case models.TypeIncome:
			income = income.Add(t.Amount)
		case models.TypeExpense:
			expense = expense.Add(t.Amount)

			label := UncategorizedLabel
			if rec.Category != nil {
				label = rec.Category.Name
			}
			if _, seen := categoryTotals[label]; !seen {
				categoryOrder = append(categoryOrder, label)
			}
			categoryTotals[label] = categoryTotals[label].Add(t.Amount)
		}

		// TRANSFER rows are listed but contribute zero everywhere.
		signed := t.SignedAmount()
		if !signed.IsZero() {
			day := t.OccurredAt.UTC().Day()
			dailyTotals[day] = dailyTotals[day].Add(signed)
		}

		items = append(items, transactionItem{
			ID:          t.ID,
			Type:        t.Type,
			Amount:      t.Amount,
			OccurredAt:  t.OccurredAt,
			Description: t.Description,
			WalletID:    t.WalletID,
			Category:    rec.Category,
		})
	}

	categoriesChart := []CategoryTotal{}
	for _, name := range categoryOrder {
		categoriesChart = append(categoriesChart, CategoryTotal{Name: name, Value: categoryTotals[name]})
	}

	dailyChart := []DailyTotal{}
	for day := 1; day <= 31; day++ {
		if v, ok := dailyTotals[day]; ok {
			dailyChart = append(dailyChart, DailyTotal{Day: day, Value: v})
		}
	}

	return Result{
		Income:          income,
		Expense:         expense,
		Balance:         income.Sub(expense),
		CategoriesChart: categoriesChart,
		DailyChart:      dailyChart,
		Transactions:    items,
	}
}

// MonthHandler serves GET /summary?month=&year=.
func MonthHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := middlewares.UserID(r)
	if !ok {
		utils.WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	month, errM := strconv.Atoi(r.URL.Query().Get("month"))
	year, errY := strconv.Atoi(r.URL.Query().Get("year"))
	if errM != nil || errY != nil {
		utils.WriteError(w, "month e year são obrigatórios", http.StatusBadRequest)
		return
	}
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		utils.WriteError(w, "month ou year inválido", http.StatusBadRequest)
		return
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	repo := ledger.NewRepository(db)
	records, err := repo.TransactionsBetween(r.Context(), userID, start, end)
	if err != nil {
		utils.Logger.Errorf("failed to fetch month transactions: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	result := Build(records)

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":              true,
		"income":          result.Income,
		"expense":         result.Expense,
		"balance":         result.Balance,
		"categoriesChart": result.CategoriesChart,
		"dailyChart":      result.DailyChart,
		"transactions":    result.Transactions,
	})
}

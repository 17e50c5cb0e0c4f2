package views

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"petcare-companion/internal/model"
)

var (
	spanishMonths = []string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
	englishMonths = []string{"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"}

	yearMonthExact  = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})$`)
	yearMonthPrefix = regexp.MustCompile(`^(\d{4})[-/](\d{2})`)
	bareMonth       = regexp.MustCompile(`^\d{1,2}$`)
)

// MonthKey formatea YYYY-MM, el formato con el que se guardan presupuestos.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// MatchMonth decide si el mes crudo de un presupuesto corresponde a
// (year, month). Acepta YYYY-MM, YYYY-M, YYYY-MM-DD..., nombre del mes
// (español o inglés, con o sin año) y número de mes suelto.
// Un nombre o número sin año coincide con cualquier año.
func MatchMonth(raw string, year int, month time.Month) bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || month < time.January || month > time.December {
		return false
	}

	y := strconv.Itoa(year)
	for _, name := range []string{spanishMonths[month-1], englishMonths[month-1]} {
		if v == name {
			return true
		}
		if strings.Contains(v, name) && strings.Contains(v, y) {
			return true
		}
	}

	if m := yearMonthExact.FindStringSubmatch(v); m != nil {
		return atoi(m[1]) == year && atoi(m[2]) == int(month)
	}
	if bareMonth.MatchString(v) {
		return atoi(v) == int(month)
	}
	if m := yearMonthPrefix.FindStringSubmatch(v); m != nil {
		return atoi(m[1]) == year && atoi(m[2]) == int(month)
	}
	return false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// FindBudget devuelve el primer presupuesto del usuario para el mes.
func FindBudget(budgets []model.Budget, userID int64, year int, month time.Month) (model.Budget, bool) {
	if userID <= 0 {
		return model.Budget{}, false
	}
	for _, b := range budgets {
		if b.OwnerUserID == userID && MatchMonth(b.Month, year, month) {
			return b, true
		}
	}
	return model.Budget{}, false
}

// ExpensesFor filtra gastos del usuario en el mes (por fecha) y, si petID
// > 0, de esa mascota. Gastos sin fecha se excluyen. Orden: fecha desc.
func ExpensesFor(expenses []model.Expense, userID int64, year int, month time.Month, petID int64) []model.Expense {
	out := make([]model.Expense, 0)
	if userID <= 0 {
		return out
	}
	for _, e := range expenses {
		if e.OwnerUserID != userID {
			continue
		}
		if petID > 0 && e.PetID != petID {
			continue
		}
		if e.Date.IsZero() || e.Date.Year() != year || e.Date.Month() != month {
			continue
		}
		out = append(out, e)
	}
	return SortByTimeDesc(out,
		func(e model.Expense) time.Time { return e.Date },
		func(e model.Expense) int64 { return e.ID })
}

func TotalOf(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// GroupByCategory suma por categoría. Orden: total desc, luego etiqueta asc.
func GroupByCategory(expenses []model.Expense) []CategoryTotal {
	idx := make(map[string]int)
	out := make([]CategoryTotal, 0)
	for _, e := range expenses {
		label := strings.TrimSpace(e.Category)
		if label == "" {
			label = UncategorizedLabel
		}
		i, ok := idx[label]
		if !ok {
			i = len(out)
			idx[label] = i
			out = append(out, CategoryTotal{Category: label, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(e.Amount)
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// BudgetSummary es el resumen de un mes. Remaining puede ser negativo.
// Sin presupuesto, Budget es cero y HasBudget=false.
type BudgetSummary struct {
	Year       int             `json:"year"`
	Month      time.Month      `json:"month"`
	PetID      int64           `json:"petId,omitempty"`
	HasBudget  bool            `json:"hasBudget"`
	BudgetID   int64           `json:"budgetId,omitempty"`
	Budget     decimal.Decimal `json:"budget"`
	Total      decimal.Decimal `json:"total"`
	Remaining  decimal.Decimal `json:"remaining"`
	Expenses   []model.Expense `json:"expenses"`
	Categories []CategoryTotal `json:"categories"`
}

func Summarize(budgets []model.Budget, expenses []model.Expense, userID int64, year int, month time.Month, petID int64) BudgetSummary {
	s := BudgetSummary{Year: year, Month: month, PetID: petID, Budget: decimal.Zero}
	if b, ok := FindBudget(budgets, userID, year, month); ok {
		s.HasBudget = true
		s.BudgetID = b.ID
		s.Budget = b.Amount
	}
	s.Expenses = ExpensesFor(expenses, userID, year, month, petID)
	s.Total = TotalOf(s.Expenses)
	s.Remaining = s.Budget.Sub(s.Total)
	s.Categories = GroupByCategory(s.Expenses)
	return s
}

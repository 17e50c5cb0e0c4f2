package finance

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"petcare-companion/internal/page"
)

func RegisterRoutes(r chi.Router, pg *Page) {
	r.Route("/finance", func(fr chi.Router) {
		fr.Get("/", viewHandler(pg))
		fr.Put("/budget", saveBudgetHandler(pg))
		fr.Post("/expenses", addExpenseHandler(pg))
		fr.Delete("/expenses/{expenseID}", deleteExpenseHandler(pg))
	})
}

type budgetRequest struct {
	Amount string `json:"amount"`
}

type expenseRequest struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// @Summary Resumen financiero del mes
// @Description Presupuesto, gastos y totales por categoría. year, month y petId cambian el contexto.
// @Tags finance
// @Produce json
// @Param year query int false "Año"
// @Param month query int false "Mes (1-12)"
// @Param petId query int false "Mascota (0 = todas)"
// @Success 200 {object} View
// @Failure 400 {string} string "invalid month"
// @Failure 401 {string} string "unauthorized"
// @Router /finance [get]
func viewHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pg.Load(r.Context()); err != nil {
			if status, msg := page.HTTPStatus(err); status == http.StatusUnauthorized {
				http.Error(w, msg, status)
				return
			}
		}
		if q := r.URL.Query(); q.Has("year") || q.Has("month") || q.Has("petId") {
			cur := pg.View().Summary
			year, month, petID := cur.Year, cur.Month, cur.PetID
			var ok bool
			if year, ok = queryInt(w, q.Get("year"), "year", year); !ok {
				return
			}
			m, ok := queryInt(w, q.Get("month"), "month", int(month))
			if !ok {
				return
			}
			p, ok := queryInt(w, q.Get("petId"), "petId", int(petID))
			if !ok {
				return
			}
			if err := pg.SetContext(year, time.Month(m), int64(p)); err != nil {
				writeError(w, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, pg.View())
	}
}

// @Summary Guardar presupuesto del mes
// @Tags finance
// @Accept json
// @Produce json
// @Param payload body budgetRequest true "Monto del presupuesto"
// @Success 200 {object} model.Budget
// @Failure 400 {string} string "amount must be greater than zero"
// @Router /finance/budget [put]
func saveBudgetHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req budgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		amount, ok := parseAmount(w, req.Amount)
		if !ok {
			return
		}
		b, err := pg.SaveBudget(r.Context(), amount)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

func addExpenseHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req expenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		amount, ok := parseAmount(w, req.Amount)
		if !ok {
			return
		}
		e, err := pg.AddExpense(r.Context(), ExpenseInput{
			Amount:      amount,
			Category:    req.Category,
			Description: req.Description,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, e)
	}
}

func deleteExpenseHandler(pg *Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "expenseID"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "expenseID must be a positive integer", http.StatusBadRequest)
			return
		}
		if err := pg.DeleteExpense(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseAmount(w http.ResponseWriter, raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		http.Error(w, "amount must be a number", http.StatusBadRequest)
		return decimal.Zero, false
	}
	return d, true
}

func queryInt(w http.ResponseWriter, raw, name string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, name+" must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

func writeError(w http.ResponseWriter, err error) {
	status, msg := page.HTTPStatus(err)
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

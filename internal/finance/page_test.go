package finance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-companion/internal/backend/backendtest"
	"petcare-companion/internal/finance"
	"petcare-companion/internal/page"
	"petcare-companion/internal/page/pagetest"
)

func seedFinance(env *pagetest.Env) {
	env.Server.Seed(backendtest.Pets,
		map[string]any{"id": 10, "usuarioId": 1, "nombre": "Firulais"},
		map[string]any{"id": 11, "usuarioId": 2, "nombre": "Michi"},
		map[string]any{"id": 12, "usuarioId": 1, "nombre": "Rocky"},
	)
	env.Server.Seed(backendtest.Budgets,
		map[string]any{"id": 40, "usuarioId": 1, "mes": "2025-03", "monto": 500},
		map[string]any{"id": 41, "usuarioId": 2, "mes": "2025-03", "monto": 900},
	)
	env.Server.Seed(backendtest.Expenses,
		map[string]any{"id": 50, "usuarioId": 1, "mascotaId": 10, "categoria": "Alimento", "monto": "120.50", "fecha": "2025-03-01T12:00:00"},
		map[string]any{"id": 51, "usuarioId": 1, "mascotaId": 12, "categoria": "Veterinario", "monto": 300, "fecha": "2025-03-10T12:00:00"},
		map[string]any{"id": 52, "usuarioId": 1, "mascotaId": 10, "categoria": "Alimento", "monto": 80, "fecha": "2025-02-20T12:00:00"},
		map[string]any{"id": 53, "usuarioId": 2, "mascotaId": 11, "categoria": "Juguetes", "monto": 45, "fecha": "2025-03-03T12:00:00"},
	)
}

func load(t *testing.T, env *pagetest.Env) *finance.Page {
	t.Helper()
	pg := finance.New(env.Deps)
	require.NoError(t, pg.Load(context.Background()))
	return pg
}

func TestLoad_DefaultsToCurrentMonthAndFirstPet(t *testing.T) {
	env := pagetest.New(t, true)
	seedFinance(env)
	v := load(t, env).View()

	assert.Equal(t, []int{2024, 2025, 2026}, v.Years)
	assert.Len(t, v.Pets, 2)

	s := v.Summary
	assert.Equal(t, 2025, s.Year)
	assert.Equal(t, time.March, s.Month)
	assert.Equal(t, int64(10), s.PetID)
	assert.True(t, s.HasBudget)
	assert.True(t, decimal.NewFromInt(500).Equal(s.Budget))
	require.Len(t, s.Expenses, 1)
	assert.True(t, decimal.RequireFromString("379.5").Equal(s.Remaining), s.Remaining.String())
}

func TestSetContext_AllPetsAndValidation(t *testing.T) {
	env := pagetest.New(t, true)
	seedFinance(env)
	pg := load(t, env)

	require.ErrorIs(t, pg.SetContext(2025, 13, 0), page.ErrInvalidInput)
	require.ErrorIs(t, pg.SetContext(2025, time.March, 11), page.ErrNotFound, "someone else's pet")

	require.NoError(t, pg.SetContext(2025, time.March, 0))
	require.NoError(t, pg.Load(context.Background()))
	s := pg.View().Summary
	assert.Zero(t, s.PetID, "all pets survives a reload")
	require.Len(t, s.Expenses, 2)
	assert.Equal(t, "Veterinario", s.Categories[0].Category)
	assert.True(t, decimal.RequireFromString("420.5").Equal(s.Total))
}

func TestSaveBudget_UpdatesExisting(t *testing.T) {
	env := pagetest.New(t, true)
	seedFinance(env)
	pg := load(t, env)

	_, err := pg.SaveBudget(context.Background(), decimal.Zero)
	require.ErrorIs(t, err, page.ErrInvalidInput)

	b, err := pg.SaveBudget(context.Background(), decimal.NewFromInt(650))
	require.NoError(t, err)
	assert.Equal(t, int64(40), b.ID)

	recs := env.Server.Records(backendtest.Budgets)
	require.Len(t, recs, 2)
	assert.Equal(t, json.Number("650"), recs[0]["monto"])
	assert.Equal(t, "2025-03", recs[0]["mes"])
	assert.True(t, decimal.NewFromInt(650).Equal(pg.View().Summary.Budget))
}

func TestSaveBudget_CreatesForNewMonth(t *testing.T) {
	env := pagetest.New(t, true)
	seedFinance(env)
	pg := load(t, env)
	require.NoError(t, pg.SetContext(2025, time.April, 10))

	_, err := pg.SaveBudget(context.Background(), decimal.NewFromInt(300))
	require.NoError(t, err)

	recs := env.Server.Records(backendtest.Budgets)
	require.Len(t, recs, 3)
	assert.Equal(t, "2025-04", recs[2]["mes"])
	assert.Equal(t, json.Number("1"), recs[2]["usuarioId"])
	assert.True(t, pg.View().Summary.HasBudget)
}

func TestAddExpense(t *testing.T) {
	env := pagetest.New(t, true)
	seedFinance(env)
	pg := load(t, env)

	_, err := pg.AddExpense(context.Background(), finance.ExpenseInput{Amount: decimal.NewFromInt(-5)})
	require.ErrorIs(t, err, page.ErrInvalidInput)

	e, err := pg.AddExpense(context.Background(), finance.ExpenseInput{
		Amount:      decimal.NewFromInt(99),
		Description: " Petco ",
	})
	require.NoError(t, err)
	assert.Equal(t, finance.DefaultCategory, e.Category)

	rec := env.Server.Records(backendtest.Expenses)[4]
	assert.Equal(t, "2025-03-01T12:00:00", rec["fecha"])
	assert.Equal(t, "Petco", rec["proveedor"])
	assert.Equal(t, json.Number("10"), rec["mascotaId"])
	assert.Len(t, pg.View().Summary.Expenses, 2)

	require.NoError(t, pg.SetContext(2025, time.March, 0))
	_, err = pg.AddExpense(context.Background(), finance.ExpenseInput{Amount: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, page.ErrInvalidInput, "needs a selected pet")
}

func TestDeleteExpense_OnlyOwn(t *testing.T) {
	env := pagetest.New(t, true)
	seedFinance(env)
	pg := load(t, env)

	require.ErrorIs(t, pg.DeleteExpense(context.Background(), 53), page.ErrForbidden)
	require.ErrorIs(t, pg.DeleteExpense(context.Background(), 999), page.ErrNotFound)
	require.NoError(t, pg.DeleteExpense(context.Background(), 50))
	assert.Empty(t, pg.View().Summary.Expenses)
}

func TestHandlers(t *testing.T) {
	env := pagetest.New(t, true)
	seedFinance(env)
	pg := finance.New(env.Deps)

	r := chi.NewRouter()
	finance.RegisterRoutes(r, pg)
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/finance?month=2&petId=10")
	require.NoError(t, err)
	var v finance.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, time.February, v.Summary.Month)
	assert.False(t, v.Summary.HasBudget)
	assert.Len(t, v.Summary.Expenses, 1)

	resp, err = http.Get(ts.URL + "/finance?month=abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/finance/budget", strings.NewReader(`{"amount":"0"}`))
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/finance/expenses", "application/json", strings.NewReader(`{"amount":"12.5","category":"Higiene"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

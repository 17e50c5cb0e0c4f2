// Package finance es la pantalla de finanzas: presupuesto mensual y gastos
// por mascota.
package finance

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"petcare-companion/internal/model"
	"petcare-companion/internal/page"
	"petcare-companion/internal/views"
)

// DefaultCategory es la categoría de un gasto sin categoría elegida.
const DefaultCategory = "Alimento"

type Page struct {
	deps page.Deps
	busy page.Busy

	mu       sync.RWMutex
	userID   int64
	year     int
	month    time.Month
	petID    int64
	allPets  bool
	pets     []model.Pet
	budgets  []model.Budget
	expenses []model.Expense
}

// New arranca en el mes actual.
func New(deps page.Deps) *Page {
	deps = deps.WithDefaults()
	now := deps.Now()
	return &Page{deps: deps, year: now.Year(), month: now.Month()}
}

type View struct {
	Loading bool                `json:"loading"`
	Years   []int               `json:"years"`
	Pets    []model.Pet         `json:"pets"`
	Summary views.BudgetSummary `json:"summary"`
}

func (p *Page) Load(ctx context.Context) error {
	uid, err := p.guard(ctx)
	if err != nil {
		return err
	}
	defer p.busy.Start()()

	b := p.deps.Backend
	return p.deps.FanOut(ctx,
		page.Task{Name: "pets", Message: "Could not load pets.", Run: func(ctx context.Context) error {
			items, err := b.ListPets(ctx)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.pets = items
			if !p.allPets {
				p.petID = views.SelectPet(views.MyPets(items, uid), p.petID)
			}
			p.mu.Unlock()
			return nil
		}},
		p.budgetsTask(),
		p.expensesTask(),
	)
}

func (p *Page) budgetsTask() page.Task {
	return page.Task{Name: "budgets", Message: "Could not load the budget.", Run: func(ctx context.Context) error {
		items, err := p.deps.Backend.ListBudgets(ctx)
		if err != nil {
			return err
		}
		p.mu.Lock()
		p.budgets = items
		p.mu.Unlock()
		return nil
	}}
}

func (p *Page) expensesTask() page.Task {
	return page.Task{Name: "expenses", Message: "Could not load expenses.", Run: func(ctx context.Context) error {
		items, err := p.deps.Backend.ListExpenses(ctx)
		if err != nil {
			return err
		}
		p.mu.Lock()
		p.expenses = items
		p.mu.Unlock()
		return nil
	}}
}

func (p *Page) View() View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	now := p.deps.Now().Year()
	return View{
		Loading: p.busy.Busy(),
		Years:   []int{now - 1, now, now + 1},
		Pets:    views.MyPets(p.pets, p.userID),
		Summary: views.Summarize(p.budgets, p.expenses, p.userID, p.year, p.month, p.petID),
	}
}

// SetContext cambia mes, año y mascota. petID 0 = todas las mascotas.
func (p *Page) SetContext(year int, month time.Month, petID int64) error {
	if year <= 0 || month < time.January || month > time.December {
		return fmt.Errorf("%w: invalid month", page.ErrInvalidInput)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if petID > 0 && views.SelectPet(views.MyPets(p.pets, p.userID), petID) != petID {
		return page.ErrNotFound
	}
	p.year, p.month, p.petID = year, month, petID
	p.allPets = petID == 0
	return nil
}

// SaveBudget actualiza el presupuesto del mes si existe; si no, lo crea.
// Después recarga presupuestos y gastos.
func (p *Page) SaveBudget(ctx context.Context, amount decimal.Decimal) (model.Budget, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.Budget{}, err
	}
	if !amount.IsPositive() {
		return model.Budget{}, fmt.Errorf("%w: amount must be greater than zero", page.ErrInvalidInput)
	}

	p.mu.RLock()
	year, month := p.year, p.month
	existing, found := views.FindBudget(p.budgets, uid, year, month)
	p.mu.RUnlock()
	defer p.busy.Start()()

	b := model.Budget{OwnerUserID: uid, Month: views.MonthKey(year, month), Amount: amount}
	var saved model.Budget
	if found && existing.ID > 0 {
		b.ID = existing.ID
		saved, err = p.deps.Backend.UpdateBudget(ctx, existing.ID, b)
	} else {
		saved, err = p.deps.Backend.CreateBudget(ctx, b)
	}
	if err != nil {
		return model.Budget{}, p.deps.Report("save budget", "Could not save the budget.", err)
	}

	if found {
		p.deps.Success("Budget updated.")
	} else {
		p.deps.Success("Budget saved.")
	}
	_ = p.deps.FanOut(ctx, p.budgetsTask(), p.expensesTask())
	return saved, nil
}

type ExpenseInput struct {
	Amount      decimal.Decimal
	Category    string
	Description string
}

// AddExpense registra un gasto de la mascota seleccionada. La fecha es el
// día 1 del mes seleccionado a las 12:00, para que caiga en el filtro.
func (p *Page) AddExpense(ctx context.Context, in ExpenseInput) (model.Expense, error) {
	uid, err := p.guard(ctx)
	if err != nil {
		return model.Expense{}, err
	}

	p.mu.RLock()
	year, month, petID := p.year, p.month, p.petID
	p.mu.RUnlock()

	if petID <= 0 {
		return model.Expense{}, fmt.Errorf("%w: select a pet first", page.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return model.Expense{}, fmt.Errorf("%w: amount must be greater than zero", page.ErrInvalidInput)
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}
	defer p.busy.Start()()

	e, err := p.deps.Backend.CreateExpense(ctx, model.Expense{
		OwnerUserID: uid,
		PetID:       petID,
		Category:    category,
		Amount:      in.Amount,
		Date:        time.Date(year, month, 1, 12, 0, 0, 0, time.UTC),
		Vendor:      strings.TrimSpace(in.Description),
	})
	if err != nil {
		return model.Expense{}, p.deps.Report("add expense", "Could not save the expense.", err)
	}

	p.deps.Success("Expense saved.")
	_ = p.deps.FanOut(ctx, p.expensesTask())
	return e, nil
}

func (p *Page) DeleteExpense(ctx context.Context, id int64) error {
	uid, err := p.guard(ctx)
	if err != nil {
		return err
	}
	p.mu.RLock()
	var found *model.Expense
	for i := range p.expenses {
		if p.expenses[i].ID == id {
			e := p.expenses[i]
			found = &e
		}
	}
	p.mu.RUnlock()
	if id <= 0 || found == nil {
		return page.ErrNotFound
	}
	if found.OwnerUserID != uid {
		return page.ErrForbidden
	}
	defer p.busy.Start()()

	if err := p.deps.Backend.DeleteExpense(ctx, id); err != nil {
		return p.deps.Report("delete expense", "Could not delete the expense.", err)
	}
	p.mu.Lock()
	p.expenses = page.RemoveByID(p.expenses, id, func(x model.Expense) int64 { return x.ID })
	p.mu.Unlock()
	return nil
}

func (p *Page) guard(ctx context.Context) (int64, error) {
	uid, err := p.deps.Guard(ctx)
	if err != nil {
		return 0, err
	}
	p.mu.Lock()
	p.userID = uid
	p.mu.Unlock()
	return uid, nil
}

package backend

import (
	"context"

	"petcare-companion/internal/model"
)

func (c *Client) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	return list(ctx, c, "expenses.list", c.norm.Expense, "allgastos")
}

func (c *Client) CreateExpense(ctx context.Context, e model.Expense) (model.Expense, error) {
	b := toExpenseBody(e)
	b.ID = 0
	return create(ctx, c, "expenses.create", "create-gasto", b, c.norm.Expense)
}

func (c *Client) UpdateExpense(ctx context.Context, id int64, e model.Expense) (model.Expense, error) {
	b := toExpenseBody(e)
	b.ID = id
	return update(ctx, c, "expenses.update", "update-gasto", id, b, c.norm.Expense)
}

func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.remove(ctx, "expenses.delete", "delete-gasto", id)
}

func (c *Client) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	return list(ctx, c, "budgets.list", c.norm.Budget, "allpresupuestos")
}

func (c *Client) CreateBudget(ctx context.Context, b model.Budget) (model.Budget, error) {
	body := toBudgetBody(b)
	body.ID = 0
	return create(ctx, c, "budgets.create", "create-presupuesto", body, c.norm.Budget)
}

func (c *Client) UpdateBudget(ctx context.Context, id int64, b model.Budget) (model.Budget, error) {
	body := toBudgetBody(b)
	body.ID = id
	return update(ctx, c, "budgets.update", "update-presupuesto", id, body, c.norm.Budget)
}

func (c *Client) DeleteBudget(ctx context.Context, id int64) error {
	return c.remove(ctx, "budgets.delete", "delete-presupuesto", id)
}

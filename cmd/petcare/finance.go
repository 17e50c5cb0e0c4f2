package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"petcare-companion/internal/finance"
)

type monthFlags struct {
	year, month int
	pet         int64
}

func (m *monthFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&m.year, "year", 0, "year (default current)")
	cmd.Flags().IntVar(&m.month, "month", 0, "month 1-12 (default current)")
	cmd.Flags().Int64Var(&m.pet, "pet", -1, "pet id, 0 for all pets (default first pet)")
}

// page carga la pantalla y aplica mes y mascota pedidos.
func (m monthFlags) page(cmd *cobra.Command, c *cli) (*finance.Page, error) {
	pg := finance.New(c.app.Deps)
	if err := pg.Load(cmd.Context()); err != nil {
		return nil, err
	}
	if m.year == 0 && m.month == 0 && m.pet < 0 {
		return pg, nil
	}
	cur := pg.View().Summary
	year, month, pet := cur.Year, cur.Month, cur.PetID
	if m.year != 0 {
		year = m.year
	}
	if m.month != 0 {
		month = time.Month(m.month)
	}
	if m.pet >= 0 {
		pet = m.pet
	}
	if err := pg.SetContext(year, month, pet); err != nil {
		return nil, err
	}
	return pg, nil
}

func (c *cli) financeCmd() *cobra.Command {
	var mf monthFlags
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Monthly budget and expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(func() error {
				pg, err := mf.page(cmd, c)
				if err != nil {
					return err
				}
				v := pg.View()
				return c.show(v, func() string { return renderFinance(v) })
			})
		},
	}
	mf.bind(cmd)

	var budgetFlags monthFlags
	budget := &cobra.Command{
		Use:   "budget AMOUNT",
		Short: "Set the budget of the month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				amount, err := decimal.NewFromString(args[0])
				if err != nil {
					return fmt.Errorf("invalid amount %q", args[0])
				}
				pg, err := budgetFlags.page(cmd, c)
				if err != nil {
					return err
				}
				b, err := pg.SaveBudget(cmd.Context(), amount)
				if err != nil {
					return err
				}
				return c.show(b, func() string { return fmt.Sprintf("budget %s: %s\n", b.Month, b.Amount) })
			})
		},
	}
	budgetFlags.bind(budget)

	var spendFlags monthFlags
	var in finance.ExpenseInput
	spend := &cobra.Command{
		Use:   "spend AMOUNT",
		Short: "Record an expense for the selected pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				amount, err := decimal.NewFromString(args[0])
				if err != nil {
					return fmt.Errorf("invalid amount %q", args[0])
				}
				in.Amount = amount
				pg, err := spendFlags.page(cmd, c)
				if err != nil {
					return err
				}
				e, err := pg.AddExpense(cmd.Context(), in)
				if err != nil {
					return err
				}
				return c.show(e, func() string { return fmt.Sprintf("expense #%d\n", e.ID) })
			})
		},
	}
	spendFlags.bind(spend)
	spend.Flags().StringVar(&in.Category, "category", finance.DefaultCategory, "category")
	spend.Flags().StringVar(&in.Description, "description", "", "vendor or note")

	rm := &cobra.Command{
		Use:   "rm EXPENSE_ID",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				pg := finance.New(c.app.Deps)
				if err := pg.Load(cmd.Context()); err != nil {
					return err
				}
				return pg.DeleteExpense(cmd.Context(), id)
			})
		},
	}

	cmd.AddCommand(budget, spend, rm)
	return cmd
}

func renderFinance(v finance.View) string {
	s := v.Summary
	budget := "not set"
	if s.HasBudget {
		budget = s.Budget.StringFixed(2)
	}
	remaining := s.Remaining.StringFixed(2)
	if s.Remaining.IsNegative() {
		remaining = styles.danger.Render(remaining)
	}
	pet := "all pets"
	for _, p := range v.Pets {
		if p.ID == s.PetID {
			pet = p.Name
		}
	}

	header := keyValues(fmt.Sprintf("%s %d", s.Month, s.Year),
		[2]string{"Pet", pet},
		[2]string{"Budget", budget},
		[2]string{"Spent", s.Total.StringFixed(2)},
		[2]string{"Remaining", remaining},
	)

	cats := make([][]string, 0, len(s.Categories))
	for _, ct := range s.Categories {
		cats = append(cats, []string{ct.Category, strconv.Itoa(ct.Count), ct.Total.StringFixed(2)})
	}
	rows := make([][]string, 0, len(s.Expenses))
	for _, e := range s.Expenses {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10), e.Date.Format("2006-01-02"), e.Category, truncate(e.Vendor, 30), e.Amount.StringFixed(2),
		})
	}
	return header +
		renderTable("By category", "No expenses this month.", []string{"Category", "Count", "Total"}, cats) +
		renderTable("Expenses", "", []string{"#", "Date", "Category", "Vendor", "Amount"}, rows)
}

package main

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"petcare-companion/internal/mypets"
)

func (c *cli) petsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pets",
		Short: "Show your pets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(func() error {
				pg := mypets.New(c.app.Deps)
				if err := pg.Load(cmd.Context()); err != nil {
					return err
				}
				v := pg.View()
				return c.show(v, func() string { return renderPets(v) })
			})
		},
	}

	var in mypets.PetInput
	var weight string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a pet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(func() error {
				if weight != "" {
					w, err := decimal.NewFromString(weight)
					if err != nil {
						return fmt.Errorf("invalid weight %q", weight)
					}
					in.Weight = w
				}
				p, err := mypets.New(c.app.Deps).CreatePet(cmd.Context(), in)
				if err != nil {
					return err
				}
				return c.show(p, func() string { return fmt.Sprintf("pet #%d %s\n", p.ID, p.Name) })
			})
		},
	}
	f := add.Flags()
	f.StringVar(&in.Name, "name", "", "pet name")
	f.StringVar(&in.Species, "species", "", "species")
	f.StringVar(&in.Breed, "breed", "", "breed")
	f.StringVar(&in.Gender, "gender", "", "gender")
	f.StringVar(&weight, "weight", "", "weight in kg")
	f.BoolVar(&in.Vaccinated, "vaccinated", false, "vaccines up to date")
	f.BoolVar(&in.Sterilized, "sterilized", false, "sterilized")
	f.BoolVar(&in.Insured, "insured", false, "has insurance")
	f.StringVar(&in.Description, "description", "", "free text")

	rm := &cobra.Command{
		Use:   "rm PET_ID",
		Short: "Delete one of your pets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				pg, id, err := c.loadPets(cmd, args[0])
				if err != nil {
					return err
				}
				return pg.DeletePet(cmd.Context(), id)
			})
		},
	}

	var tr mypets.TreatmentInput
	var cost string
	treat := &cobra.Command{
		Use:   "treat PET_ID",
		Short: "Record a treatment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				pg, id, err := c.loadPets(cmd, args[0])
				if err != nil {
					return err
				}
				tr.PetID = id
				if cost != "" {
					if tr.Cost, err = decimal.NewFromString(cost); err != nil {
						return fmt.Errorf("invalid cost %q", cost)
					}
				}
				t, err := pg.AddTreatment(cmd.Context(), tr)
				if err != nil {
					return err
				}
				return c.show(t, func() string { return fmt.Sprintf("treatment #%d\n", t.ID) })
			})
		},
	}
	treat.Flags().StringVar(&tr.Type, "type", "", "treatment type")
	treat.Flags().StringVar(&tr.Vet, "vet", "", "veterinarian")
	treat.Flags().StringVar(&cost, "cost", "", "cost")
	treat.Flags().StringVar(&tr.Description, "description", "", "notes")

	gps := &cobra.Command{
		Use:   "gps PET_ID LAT LNG",
		Short: "Record a GPS position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				lat, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("invalid latitude %q", args[1])
				}
				lng, err := strconv.ParseFloat(args[2], 64)
				if err != nil {
					return fmt.Errorf("invalid longitude %q", args[2])
				}
				pg, id, err := c.loadPets(cmd, args[0])
				if err != nil {
					return err
				}
				pt, err := pg.AddGPS(cmd.Context(), mypets.GPSInput{PetID: id, Latitude: &lat, Longitude: &lng})
				if err != nil {
					return err
				}
				return c.show(pt, func() string { return pg.MapLink(id) + "\n" })
			})
		},
	}

	cmd.AddCommand(add, rm, treat, gps)
	return cmd
}

func (c *cli) loadPets(cmd *cobra.Command, rawID string) (*mypets.Page, int64, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, 0, err
	}
	pg := mypets.New(c.app.Deps)
	if err := pg.Load(cmd.Context()); err != nil {
		return nil, 0, err
	}
	return pg, id, nil
}

func renderPets(v mypets.View) string {
	rows := make([][]string, 0, len(v.Pets))
	for _, card := range v.Pets {
		p := card.Pet
		id := strconv.FormatInt(p.ID, 10)
		if p.ID == v.Selected {
			id = "› " + id
		}
		last := "-"
		if len(card.RecentGPS) > 0 {
			g := card.RecentGPS[0]
			last = fmt.Sprintf("%.4f, %.4f", g.Latitude, g.Longitude)
		}
		rows = append(rows, []string{
			id,
			p.Name,
			p.Species,
			p.Breed,
			p.Weight.String(),
			yesNo(p.Vaccinated),
			strconv.Itoa(len(card.Treatments)),
			last,
			yesNo(card.Listed),
		})
	}
	return renderTable("My pets", "You have no pets registered.",
		[]string{"#", "Name", "Species", "Breed", "Kg", "Vaccinated", "Treatments", "Last GPS", "For adoption"}, rows)
}

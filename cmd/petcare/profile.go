package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"petcare-companion/internal/profile"
)

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile and stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(func() error {
				pg := profile.New(c.app.Deps)
				if err := pg.Load(cmd.Context()); err != nil {
					return err
				}
				v := pg.View()
				return c.show(v, func() string { return renderProfile(v) })
			})
		},
	}

	var in profile.ProfileInput
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Update your personal data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(func() error {
				pg := profile.New(c.app.Deps)
				if err := pg.Load(cmd.Context()); err != nil {
					return err
				}
				// flags vacíos conservan el valor actual
				cur := pg.View().User
				if !cmd.Flags().Changed("name") {
					in.Name = cur.Name
				}
				if !cmd.Flags().Changed("email") {
					in.Email = cur.Email
				}
				if !cmd.Flags().Changed("phone") {
					in.Phone = cur.Phone
				}
				if !cmd.Flags().Changed("curp") {
					in.NationalID = cur.NationalID
				}
				u, err := pg.Save(cmd.Context(), in)
				if err != nil {
					return err
				}
				return c.show(u, func() string { return "saved: " + u.Name + "\n" })
			})
		},
	}
	f := edit.Flags()
	f.StringVar(&in.Name, "name", "", "full name")
	f.StringVarP(&in.Email, "email", "e", "", "email")
	f.StringVar(&in.Phone, "phone", "", "phone number")
	f.StringVar(&in.NationalID, "curp", "", "national id (CURP)")

	photo := &cobra.Command{
		Use:   "photo URL",
		Short: "Change your profile photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				pg := profile.New(c.app.Deps)
				if err := pg.Load(cmd.Context()); err != nil {
					return err
				}
				u, err := pg.SavePhoto(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.show(u, func() string { return "photo: " + u.Photo + "\n" })
			})
		},
	}

	cmd.AddCommand(edit, photo)
	return cmd
}

func renderProfile(v profile.View) string {
	hood := "-"
	if v.Neighborhood != nil {
		hood = v.Neighborhood.Name
	}
	return keyValues(v.User.Name,
		[2]string{"Email", v.User.Email},
		[2]string{"Phone", orDash(v.User.Phone)},
		[2]string{"CURP", orDash(v.User.NationalID)},
		[2]string{"Neighborhood", hood},
	) + renderTable("", "", []string{"Pets", "Posts", "Listings", "Requests"}, [][]string{{
		strconv.Itoa(v.Stats.Pets),
		strconv.Itoa(v.Stats.Posts),
		strconv.Itoa(v.Stats.Listings),
		strconv.Itoa(v.Stats.Requests),
	}})
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

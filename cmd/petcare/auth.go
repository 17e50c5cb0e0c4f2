package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"petcare-companion/internal/account"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("PETCARE_PASSWORD")
			}
			return c.run(func() error {
				u, err := account.New(c.app.Deps).Login(cmd.Context(), email, password)
				if err != nil {
					return err
				}
				return c.show(u, func() string {
					return keyValues("Logged in", [2]string{"User", u.Name}, [2]string{"Email", u.Email})
				})
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (default $PETCARE_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Close the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(func() error { return account.New(c.app.Deps).Logout(cmd.Context()) })
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: func(*cobra.Command, []string) error {
			return c.run(func() error {
				me, err := account.New(c.app.Deps).WhoAmI()
				if err != nil {
					return err
				}
				return c.show(me, func() string {
					return keyValues("",
						[2]string{"User", me.User.Name},
						[2]string{"Email", me.User.Email},
						[2]string{"Since", me.LoggedInAt.Local().Format("2006-01-02 15:04")},
					)
				})
			})
		},
	}
}

func (c *cli) registerCmd() *cobra.Command {
	var in account.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Password == "" {
				in.Password = os.Getenv("PETCARE_PASSWORD")
			}
			if in.Password == "" {
				return c.fail(errors.New("password is required"))
			}
			return c.run(func() error {
				u, err := account.New(c.app.Deps).Register(cmd.Context(), in)
				if err != nil {
					return err
				}
				return c.show(u, func() string {
					return keyValues("Account created", [2]string{"User", u.Name}, [2]string{"Email", u.Email})
				})
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "full name")
	f.StringVarP(&in.Email, "email", "e", "", "email")
	f.StringVarP(&in.Password, "password", "p", "", "password (default $PETCARE_PASSWORD)")
	f.StringVar(&in.NationalID, "curp", "", "national id (CURP)")
	f.StringVar(&in.Phone, "phone", "", "phone number")
	return cmd
}

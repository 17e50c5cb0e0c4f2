package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"petcare-companion/internal/adoptions"
	"petcare-companion/internal/model"
)

func (c *cli) adoptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "adoptions",
		Aliases: []string{"adopt"},
		Short:   "Browse and manage adoptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(func() error {
				pg := adoptions.New(c.app.Deps)
				if err := pg.Load(cmd.Context()); err != nil {
					return err
				}
				v := pg.View()
				return c.show(v, func() string { return renderAdoptions(v) })
			})
		},
	}

	// action arma un subcomando ID -> acción sobre la página ya cargada.
	action := func(use, short string, fn func(*cobra.Command, *adoptions.Page, int64, []string) (any, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.run(func() error {
					id, err := parseID(args[0])
					if err != nil {
						return err
					}
					pg := adoptions.New(c.app.Deps)
					if err := pg.Load(cmd.Context()); err != nil {
						return err
					}
					out, err := fn(cmd, pg, id, args[1:])
					if err != nil || out == nil {
						return err
					}
					return c.show(out, func() string { return "ok\n" })
				})
			},
		}
	}

	cmd.AddCommand(
		action("publish PET_ID", "Publish one of your pets for adoption", func(cmd *cobra.Command, pg *adoptions.Page, id int64, _ []string) (any, error) {
			return pg.Publish(cmd.Context(), id)
		}),
		action("toggle LISTING_ID", "Pause or resume a listing", func(cmd *cobra.Command, pg *adoptions.Page, id int64, _ []string) (any, error) {
			return pg.ToggleAvailability(cmd.Context(), id)
		}),
		action("unpublish LISTING_ID", "Delete a listing", func(cmd *cobra.Command, pg *adoptions.Page, id int64, _ []string) (any, error) {
			return nil, pg.DeleteListing(cmd.Context(), id)
		}),
		action("request LISTING_ID [MESSAGE]", "Ask to adopt a pet", func(cmd *cobra.Command, pg *adoptions.Page, id int64, rest []string) (any, error) {
			return pg.Request(cmd.Context(), id, strings.Join(rest, " "))
		}),
		action("cancel REQUEST_ID", "Cancel one of your requests", func(cmd *cobra.Command, pg *adoptions.Page, id int64, _ []string) (any, error) {
			return nil, pg.CancelRequest(cmd.Context(), id)
		}),
		action("accept REQUEST_ID", "Accept a request on your listing", func(cmd *cobra.Command, pg *adoptions.Page, id int64, _ []string) (any, error) {
			return pg.Accept(cmd.Context(), id)
		}),
		action("reject REQUEST_ID", "Reject a request on your listing", func(cmd *cobra.Command, pg *adoptions.Page, id int64, _ []string) (any, error) {
			return pg.Reject(cmd.Context(), id)
		}),
	)
	return cmd
}

func renderAdoptions(v adoptions.View) string {
	explore := make([][]string, 0, len(v.Explore))
	for _, a := range v.Explore {
		status := "-"
		if a.MyRequest != nil {
			status = string(a.MyRequest.Status)
		}
		explore = append(explore, []string{
			strconv.FormatInt(a.Listing.ID, 10), a.PetName, a.Characteristics, a.OwnerName, status,
		})
	}

	mine := make([][]string, 0, len(v.Mine))
	for _, a := range v.Mine {
		mine = append(mine, []string{
			strconv.FormatInt(a.Listing.ID, 10), a.PetName, availability(a.Listing),
		})
	}

	incoming := make([][]string, 0, len(v.Incoming))
	for _, r := range v.Incoming {
		incoming = append(incoming, []string{
			strconv.FormatInt(r.Request.ID, 10), r.PetName, r.RequesterName, string(r.Request.Status), truncate(r.Request.Message, 40),
		})
	}

	return renderTable("Available", "Nothing to adopt right now.",
		[]string{"#", "Pet", "Characteristics", "Owner", "My request"}, explore) +
		renderTable("My listings", "You have not published any pet.",
			[]string{"#", "Pet", "Status"}, mine) +
		renderTable("Requests received", "No requests yet.",
			[]string{"#", "Pet", "From", "Status", "Message"}, incoming)
}

func availability(l model.AdoptionListing) string {
	if l.Available {
		return "available"
	}
	return "paused"
}

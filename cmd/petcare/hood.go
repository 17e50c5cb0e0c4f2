package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"petcare-companion/internal/neighborhood"
)

func (c *cli) hoodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hood",
		Aliases: []string{"neighborhood"},
		Short:   "Your neighborhood network",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(func() error {
				pg, err := c.loadHood(cmd)
				if err != nil {
					return err
				}
				v := pg.View()
				return c.show(v, func() string { return renderHood(v) })
			})
		},
	}

	var code string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a neighborhood and get its invitation code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				pg, err := c.loadHood(cmd)
				if err != nil {
					return err
				}
				h, err := pg.Create(cmd.Context(), neighborhood.CreateInput{Name: args[0], Code: code})
				if err != nil {
					return err
				}
				return c.show(h, func() string {
					return keyValues(h.Name, [2]string{"Invitation code", styles.title.Render(h.InvitationCode)})
				})
			})
		},
	}
	create.Flags().StringVar(&code, "code", "", "custom invitation code")

	join := &cobra.Command{
		Use:   "join CODE",
		Short: "Join a neighborhood with its invitation code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				pg, err := c.loadHood(cmd)
				if err != nil {
					return err
				}
				h, err := pg.Join(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.show(h, func() string { return "active: " + h.Name + "\n" })
			})
		},
	}

	use := &cobra.Command{
		Use:   "use HOOD_ID",
		Short: "Switch the active neighborhood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				pg, err := c.loadHood(cmd)
				if err != nil {
					return err
				}
				return pg.SetActive(cmd.Context(), id)
			})
		},
	}

	var in neighborhood.PostInput
	post := &cobra.Command{
		Use:   "post",
		Short: "Post in the active neighborhood",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(func() error {
				pg, err := c.loadHood(cmd)
				if err != nil {
					return err
				}
				p, err := pg.Post(cmd.Context(), in)
				if err != nil {
					return err
				}
				return c.show(p, func() string { return fmt.Sprintf("post #%d\n", p.ID) })
			})
		},
	}
	post.Flags().StringVarP(&in.Content, "content", "c", "", "post text")
	post.Flags().BoolVar(&in.Alert, "alert", false, "mark as alert")
	post.Flags().StringSliceVar(&in.Images, "image", nil, "image URL, repeatable")

	like := &cobra.Command{
		Use:   "like POST_ID",
		Short: "Like or unlike a neighborhood post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				pg, err := c.loadHood(cmd)
				if err != nil {
					return err
				}
				liked, err := pg.ToggleLike(cmd.Context(), id)
				if err != nil {
					return err
				}
				return c.show(map[string]bool{"liked": liked}, func() string { return "liked: " + yesNo(liked) + "\n" })
			})
		},
	}

	comment := &cobra.Command{
		Use:   "comment POST_ID TEXT",
		Short: "Comment on a neighborhood post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				pg, err := c.loadHood(cmd)
				if err != nil {
					return err
				}
				cm, err := pg.AddComment(cmd.Context(), id, args[1])
				if err != nil {
					return err
				}
				return c.show(cm, func() string { return fmt.Sprintf("comment #%d\n", cm.ID) })
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm POST_ID",
		Short: "Delete one of your neighborhood posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				pg, err := c.loadHood(cmd)
				if err != nil {
					return err
				}
				return pg.DeletePost(cmd.Context(), id)
			})
		},
	}

	cmd.AddCommand(create, join, use, post, like, comment, rm)
	return cmd
}

func (c *cli) loadHood(cmd *cobra.Command) (*neighborhood.Page, error) {
	pg := neighborhood.New(c.app.Deps)
	if err := pg.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return pg, nil
}

func renderHood(v neighborhood.View) string {
	hoods := make([][]string, 0, len(v.Mine))
	for _, h := range v.Mine {
		id := strconv.FormatInt(h.ID, 10)
		if v.Active != nil && v.Active.ID == h.ID {
			id = "› " + id
		}
		hoods = append(hoods, []string{id, h.Name, h.InvitationCode})
	}
	out := renderTable("My neighborhoods", "You are not in any neighborhood. Create one or join with a code.",
		[]string{"#", "Name", "Code"}, hoods)
	if v.Active == nil {
		return out
	}

	posts := make([][]string, 0, len(v.Posts))
	for _, p := range v.Posts {
		text := truncate(p.Post.Content, 48)
		if p.Post.IsAlert {
			text = styles.danger.Render("ALERT ") + text
		}
		posts = append(posts, []string{
			strconv.FormatInt(p.Post.ID, 10),
			p.Author,
			text,
			strconv.Itoa(p.LikeCount),
			strconv.Itoa(p.CommentCount),
			p.Post.CreatedAt.Local().Format("02 Jan 15:04"),
		})
	}
	return out + renderTable(v.Active.Name, "No posts in this neighborhood yet.",
		[]string{"#", "Author", "Post", "Likes", "Comments", "When"}, posts)
}

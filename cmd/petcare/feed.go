package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"petcare-companion/internal/dashboard"
)

func (c *cli) feedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show the community feed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(func() error {
				pg := dashboard.New(c.app.Deps)
				if err := pg.Load(cmd.Context()); err != nil {
					return err
				}
				v := pg.View()
				return c.show(v, func() string { return renderFeed(v) })
			})
		},
	}

	var in dashboard.PostInput
	post := &cobra.Command{
		Use:   "post",
		Short: "Publish a post",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(func() error {
				p, err := dashboard.New(c.app.Deps).CreatePost(cmd.Context(), in)
				if err != nil {
					return err
				}
				return c.show(p, func() string { return fmt.Sprintf("post #%d\n", p.ID) })
			})
		},
	}
	post.Flags().StringVarP(&in.Content, "content", "c", "", "post text")
	post.Flags().StringVar(&in.Image, "image", "", "main image URL")
	post.Flags().StringVar(&in.ExtraImages, "extra", "", "extra image URLs, one per line")

	rm := &cobra.Command{
		Use:   "rm POST_ID",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				pg := dashboard.New(c.app.Deps)
				if err := pg.Load(cmd.Context()); err != nil {
					return err
				}
				return pg.DeletePost(cmd.Context(), id)
			})
		},
	}

	like := &cobra.Command{
		Use:   "like POST_ID",
		Short: "Like or unlike a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				pg := dashboard.New(c.app.Deps)
				if err := pg.Load(cmd.Context()); err != nil {
					return err
				}
				liked, err := pg.ToggleLike(cmd.Context(), id)
				if err != nil {
					return err
				}
				return c.show(map[string]bool{"liked": liked}, func() string {
					return "liked: " + yesNo(liked) + "\n"
				})
			})
		},
	}

	comment := &cobra.Command{
		Use:   "comment POST_ID TEXT",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(func() error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				pg := dashboard.New(c.app.Deps)
				if err := pg.Load(cmd.Context()); err != nil {
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

	cmd.AddCommand(post, rm, like, comment)
	return cmd
}

func renderFeed(v dashboard.View) string {
	rows := make([][]string, 0, len(v.Posts))
	for _, p := range v.Posts {
		author := p.Author
		if p.Mine {
			author += " (you)"
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.Post.ID, 10),
			author,
			truncate(p.Post.Content, 48),
			strconv.Itoa(len(p.Images)),
			strconv.Itoa(p.LikeCount),
			strconv.Itoa(len(p.Comments)),
			p.Post.CreatedAt.Local().Format("02 Jan 15:04"),
		})
	}
	return renderTable("Feed", "No posts yet.", []string{"#", "Author", "Post", "Img", "Likes", "Comments", "When"}, rows)
}

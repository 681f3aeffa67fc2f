package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	postdomain "github.com/trandrew/microblog/internal/post/domain"
)

var (
	feedUser     string
	feedPage     int
	feedPageSize int
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show your personalized timeline",
	RunE:  runFeed,
}

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Show the global feed",
	RunE:  runExplore,
}

var timelineCmd = &cobra.Command{
	Use:   "timeline <username>",
	Short: "Show one user's posts",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimeline,
}

func init() {
	feedCmd.Flags().StringVar(&feedUser, "user", "", "acting username (required)")
	_ = feedCmd.MarkFlagRequired("user")

	for _, c := range []*cobra.Command{feedCmd, exploreCmd, timelineCmd} {
		c.Flags().IntVar(&feedPage, "page", 1, "page number (1-indexed)")
		c.Flags().IntVar(&feedPageSize, "page-size", 0, "posts per page")
	}
}

func runFeed(cmd *cobra.Command, args []string) error {
	ctx, cancel := opCtx()
	defer cancel()

	user, err := actingUser(ctx, feedUser)
	if err != nil {
		return err
	}

	page, err := app.Feed.Home(ctx, user.ID, pageRequest())
	if err != nil {
		return err
	}

	printPage(ctx, page)
	return nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	ctx, cancel := opCtx()
	defer cancel()

	page, err := app.Feed.Explore(ctx, pageRequest())
	if err != nil {
		return err
	}

	printPage(ctx, page)
	return nil
}

func runTimeline(cmd *cobra.Command, args []string) error {
	ctx, cancel := opCtx()
	defer cancel()

	user, err := app.Users.FindByUsername(ctx, args[0])
	if err != nil {
		return err
	}

	page, err := app.Feed.ByAuthor(ctx, user.ID, pageRequest())
	if err != nil {
		return err
	}

	printPage(ctx, page)
	return nil
}

func pageRequest() postdomain.PageRequest {
	return postdomain.PageRequest{Page: feedPage, PageSize: feedPageSize}
}

func printPage(ctx context.Context, page postdomain.Page) {
	if len(page.Items) == 0 {
		fmt.Printf("no posts on page %d\n", page.Page)
		return
	}

	authors := make(map[int64]string)
	for _, post := range page.Items {
		name, ok := authors[int64(post.AuthorID)]
		if !ok {
			if author, err := app.Users.FindByID(ctx, post.AuthorID); err == nil {
				name = author.Username
			} else {
				name = fmt.Sprintf("user#%d", post.AuthorID)
			}
			authors[int64(post.AuthorID)] = name
		}
		fmt.Printf("[%s] %s: %s\n", post.CreatedAt.Format("2006-01-02 15:04"), name, post.Body)
	}

	if page.HasPrev {
		fmt.Printf("  <- page %d\n", page.Page-1)
	}
	if page.HasNext {
		fmt.Printf("  page %d ->\n", page.Page+1)
	}
}

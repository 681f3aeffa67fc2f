package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	postservice "github.com/trandrew/microblog/internal/post/service"
)

var (
	postUser     string
	followUser   string
	unfollowUser string
)

var postCmd = &cobra.Command{
	Use:   "post <body>...",
	Short: "Publish a post",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPost,
}

var followCmd = &cobra.Command{
	Use:   "follow <username>",
	Short: "Follow another user",
	Args:  cobra.ExactArgs(1),
	RunE:  runFollow,
}

var unfollowCmd = &cobra.Command{
	Use:   "unfollow <username>",
	Short: "Stop following a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnfollow,
}

func init() {
	postCmd.Flags().StringVar(&postUser, "user", "", "acting username (required)")
	_ = postCmd.MarkFlagRequired("user")

	followCmd.Flags().StringVar(&followUser, "user", "", "acting username (required)")
	_ = followCmd.MarkFlagRequired("user")

	unfollowCmd.Flags().StringVar(&unfollowUser, "user", "", "acting username (required)")
	_ = unfollowCmd.MarkFlagRequired("user")
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx, cancel := opCtx()
	defer cancel()

	user, err := actingUser(ctx, postUser)
	if err != nil {
		return err
	}

	post, err := app.Posts.Create(ctx, postservice.CreateInput{
		AuthorID: user.ID,
		Body:     strings.Join(args, " "),
	})
	if err != nil {
		return err
	}

	fmt.Printf("posted #%d at %s\n", post.ID, post.CreatedAt.Format("15:04:05"))
	return nil
}

func runFollow(cmd *cobra.Command, args []string) error {
	ctx, cancel := opCtx()
	defer cancel()

	user, err := actingUser(ctx, followUser)
	if err != nil {
		return err
	}

	target, err := app.Users.FindByUsername(ctx, args[0])
	if err != nil {
		return err
	}

	if err := app.Graph.Follow(ctx, user.ID, target.ID); err != nil {
		return err
	}

	fmt.Printf("you are now following %s\n", target.Username)
	return nil
}

func runUnfollow(cmd *cobra.Command, args []string) error {
	ctx, cancel := opCtx()
	defer cancel()

	user, err := actingUser(ctx, unfollowUser)
	if err != nil {
		return err
	}

	target, err := app.Users.FindByUsername(ctx, args[0])
	if err != nil {
		return err
	}

	if err := app.Graph.Unfollow(ctx, user.ID, target.ID); err != nil {
		return err
	}

	fmt.Printf("you are no longer following %s\n", target.Username)
	return nil
}

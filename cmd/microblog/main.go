package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/trandrew/microblog/internal/common/bootstrap"
)

var app *bootstrap.App

var rootCmd = &cobra.Command{
	Use:   "microblog",
	Short: "Microblogging core: users, follows, posts and feeds",
	Long: `Command-line surface over the microblog core.

Examples:
  microblog register -u john -e john@example.com -p secretpass1
  microblog post --user john "hello world"
  microblog follow --user john susan
  microblog feed --user john --page 2`,
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var err error
	app, err = bootstrap.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "microblog: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	rootCmd.AddCommand(
		registerCmd,
		loginCmd,
		profileCmd,
		editProfileCmd,
		postCmd,
		followCmd,
		unfollowCmd,
		feedCmd,
		exploreCmd,
		timelineCmd,
		resetRequestCmd,
		resetPasswordCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// opCtx bounds one logical operation the same way a request handler would.
func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), app.Config.RequestTimeout)
}

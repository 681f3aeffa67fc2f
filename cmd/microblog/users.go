package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	userdomain "github.com/trandrew/microblog/internal/user/domain"
	userservice "github.com/trandrew/microblog/internal/user/service"
)

var (
	registerUsername string
	registerEmail    string
	registerPassword string
	registerAbout    string

	loginUsername string
	loginPassword string

	editUser     string
	editUsername string
	editAbout    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new user account",
	RunE:  runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify credentials for a user",
	RunE:  runLogin,
}

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Show a user's profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

var editProfileCmd = &cobra.Command{
	Use:   "edit-profile",
	Short: "Change username or about text",
	RunE:  runEditProfile,
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "username (required)")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "email address (required)")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "password (required)")
	registerCmd.Flags().StringVar(&registerAbout, "about", "", "about text")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (required)")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")

	editProfileCmd.Flags().StringVar(&editUser, "user", "", "acting username (required)")
	editProfileCmd.Flags().StringVar(&editUsername, "username", "", "new username")
	editProfileCmd.Flags().StringVar(&editAbout, "about", "", "new about text")
	_ = editProfileCmd.MarkFlagRequired("user")
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx, cancel := opCtx()
	defer cancel()

	user, err := app.Users.Register(ctx, userservice.RegisterInput{
		Username: registerUsername,
		Email:    registerEmail,
		Password: registerPassword,
		AboutMe:  registerAbout,
	})
	if err != nil {
		return err
	}

	fmt.Printf("registered %s (id %d)\n", user.Username, user.ID)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := opCtx()
	defer cancel()

	user, err := app.Users.Authenticate(ctx, loginUsername, loginPassword)
	if err != nil {
		return err
	}

	app.LastSeen.Enqueue(user.ID)
	fmt.Printf("welcome back, %s\n", user.Username)
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	ctx, cancel := opCtx()
	defer cancel()

	user, err := app.Users.FindByUsername(ctx, args[0])
	if err != nil {
		return err
	}

	followers, err := app.Graph.FollowerCount(ctx, user.ID)
	if err != nil {
		return err
	}
	following, err := app.Graph.FollowingCount(ctx, user.ID)
	if err != nil {
		return err
	}

	profile := user.Profile()
	fmt.Printf("%s\n", profile.Username)
	if profile.AboutMe != "" {
		fmt.Printf("  about:     %s\n", profile.AboutMe)
	}
	fmt.Printf("  avatar:    %s\n", userservice.AvatarURL(user.Email, 128))
	fmt.Printf("  last seen: %s\n", profile.LastSeen.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("  followers: %d, following: %d\n", followers, following)
	return nil
}

func runEditProfile(cmd *cobra.Command, args []string) error {
	ctx, cancel := opCtx()
	defer cancel()

	user, err := actingUser(ctx, editUser)
	if err != nil {
		return err
	}

	input := userservice.UpdateProfileInput{}
	if cmd.Flags().Changed("username") {
		input.Username = &editUsername
	}
	if cmd.Flags().Changed("about") {
		input.AboutMe = &editAbout
	}

	updated, err := app.Users.UpdateProfile(ctx, user.ID, input)
	if err != nil {
		return err
	}

	fmt.Printf("profile updated: %s\n", updated.Username)
	return nil
}

// actingUser resolves the --user flag and records the interaction as an
// authenticated touch of last_seen.
func actingUser(ctx context.Context, username string) (userdomain.User, error) {
	user, err := app.Users.FindByUsername(ctx, username)
	if err != nil {
		return userdomain.User{}, err
	}
	app.LastSeen.Enqueue(user.ID)
	return user, nil
}

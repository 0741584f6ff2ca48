package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/diary/internal/app"
	"github.com/templui/diary/internal/config"
	"github.com/templui/diary/internal/logger"
)

func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User administration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "activate <email>",
		Short: "Mark a user as verified without the emailed code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(logger.Options{Development: true})

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.UserService.Activate(ctx, args[0])
			if err != nil {
				return fmt.Errorf("activate %s: %w", args[0], err)
			}

			fmt.Printf("activated %s (%s)\n", user.Username, user.Email)
			return nil
		},
	})
	return cmd
}

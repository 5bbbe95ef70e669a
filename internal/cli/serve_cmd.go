package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newServeCmd(a *App) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Serve == nil {
				return fmt.Errorf("HTTP server is not configured")
			}
			return a.Serve(ctxOf(cmd), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func newCalendarCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Google Calendar integration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "auth",
		Short: "Authorize calendar access and store the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.AuthorizeCalendar == nil {
				return fmt.Errorf("calendar credentials are not configured")
			}
			return a.AuthorizeCalendar(ctxOf(cmd), cmd.OutOrStdout())
		},
	})
	return cmd
}

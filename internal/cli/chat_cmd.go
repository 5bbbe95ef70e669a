package cli

import (
	"fmt"
	"strings"

	"github.com/abushaidislam/study-guide/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message...]",
		Short: "Talk to the study assistant",
		Long: "With a message, sends it once and prints the reply. Without one, opens\n" +
			"an interactive chat on a terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			if len(args) > 0 {
				reply, err := a.Chat.Send(ctx, strings.Join(args, " "), a.now())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), reply.Reply)
				return nil
			}
			if !a.interactive() {
				return fmt.Errorf("no message given and stdin is not a terminal")
			}
			p := tea.NewProgram(newChatView(ctx, a), tea.WithContext(ctx))
			_, err := p.Run()
			return err
		},
	}
	cmd.AddCommand(newChatHistoryCmd(a))
	return cmd
}

func newChatHistoryCmd(a *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the recent transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := a.Chat.History(ctxOf(cmd), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChatHistory(msgs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of messages (default from config)")
	return cmd
}

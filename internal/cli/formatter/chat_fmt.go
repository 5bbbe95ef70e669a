package formatter

import (
	"strings"

	"github.com/abushaidislam/study-guide/internal/domain"
)

func speaker(role domain.ChatRole) string {
	if role == domain.RoleAssistant {
		return StylePurple.Render("studyflow")
	}
	return StyleBlue.Render("you")
}

// FormatChatLine renders one transcript entry as "speaker> content".
func FormatChatLine(role domain.ChatRole, content string) string {
	return speaker(role) + Dim("> ") + content
}

func FormatChatHistory(msgs []domain.ChatMessage) string {
	if len(msgs) == 0 {
		return Dim("No messages yet.") + "\n"
	}
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(Dim(m.CreatedAt.Format("01-02 15:04")) + " ")
		b.WriteString(FormatChatLine(m.Role, m.Content))
		b.WriteString("\n")
	}
	return b.String()
}

func FormatChatWelcome() string {
	return Header("studyflow chat") + "\n" +
		Dim(`Ask for a plan ("kalke physics niye plan dao") or just talk. Esc to quit.`)
}

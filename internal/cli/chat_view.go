package cli

import (
	"context"
	"strings"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/cli/formatter"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type chatReplyMsg struct {
	reply *app.ChatReply
	err   error
}

// chatView is the interactive chat loop. Each submitted line is sent
// through the chat service; plan replies render their blocks inline.
type chatView struct {
	ctx     context.Context
	app     *App
	input   textinput.Model
	spinner spinner.Model

	lines   []string
	waiting bool
	width   int
}

func newChatView(ctx context.Context, a *App) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 1000
	ti.Placeholder = "plan dao"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return &chatView{
		ctx:     ctx,
		app:     a,
		input:   ti,
		spinner: sp,
		lines:   []string{formatter.FormatChatWelcome()},
	}
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return v, tea.Quit
		case tea.KeyEnter:
			if v.waiting {
				return v, nil
			}
			text := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if text == "" {
				return v, nil
			}
			v.lines = append(v.lines, formatter.FormatChatLine(domain.RoleUser, text))
			v.waiting = true
			return v, tea.Batch(v.spinner.Tick, v.send(text))
		}

	case chatReplyMsg:
		v.waiting = false
		if msg.err != nil {
			v.lines = append(v.lines, formatter.StyleRed.Render("error: "+msg.err.Error()))
			return v, nil
		}
		v.lines = append(v.lines, formatter.FormatChatLine(domain.RoleAssistant, msg.reply.Reply))
		return v, nil

	case spinner.TickMsg:
		if !v.waiting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) send(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := v.app.Chat.Send(v.ctx, text, v.app.now())
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (v *chatView) View() string {
	var b strings.Builder
	for _, line := range v.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if v.waiting {
		b.WriteString(v.spinner.View() + formatter.Dim(" thinking..."))
		b.WriteString("\n")
	}
	b.WriteString(formatter.StyleBlue.Render("you") + formatter.Dim("> "))
	b.WriteString(v.input.View())
	return b.String()
}

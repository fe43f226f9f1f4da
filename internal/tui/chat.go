package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"askmira/internal/models"
)

// chatLine is one rendered transcript entry.
type chatLine struct {
	role    string
	content string
}

// ChatView is the question/answer screen.
type ChatView struct {
	styles *Styles
	deps   *Deps

	username string
	lines    []chatLine
	input    textinput.Model
	vp       viewport.Model
	thinking bool
	ready    bool
}

// NewChatView creates the chat screen for a logged-in user.
func NewChatView(styles *Styles, deps *Deps, username string) *ChatView {
	input := textinput.New()
	input.Placeholder = "Ask about any education system..."
	input.CharLimit = 512
	input.Focus()

	return &ChatView{
		styles:   styles,
		deps:     deps,
		username: username,
		input:    input,
	}
}

// Init loads the stored transcript when history is enabled.
func (v *ChatView) Init() tea.Cmd {
	if v.deps.History == nil {
		return nil
	}
	return func() tea.Msg {
		msgs, err := v.deps.History.Recent(context.Background(), v.username, 50)
		return historyMsg{messages: msgs, err: err}
	}
}

// SetSize resizes the transcript viewport.
func (v *ChatView) SetSize(width, height int) {
	inputHeight := 3
	helpHeight := 2
	vpHeight := height - inputHeight - helpHeight
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !v.ready {
		v.vp = viewport.New(width, vpHeight)
		v.ready = true
	} else {
		v.vp.Width = width
		v.vp.Height = vpHeight
	}
	v.refresh()
}

// Update handles keys and async answers.
func (v *ChatView) Update(msg tea.Msg) (*ChatView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && !v.thinking {
			question := strings.TrimSpace(v.input.Value())
			if question == "" {
				return v, nil
			}
			v.input.Reset()
			v.thinking = true
			v.lines = append(v.lines, chatLine{role: models.RoleUser, content: question})
			v.refresh()
			return v, v.ask(question)
		}

	case historyMsg:
		if msg.err == nil {
			for _, m := range msg.messages {
				v.lines = append(v.lines, chatLine{role: m.Role, content: m.Content})
			}
			v.refresh()
		}
		return v, nil

	case answerMsg:
		v.thinking = false
		v.lines = append(v.lines, chatLine{role: models.RoleAssistant, content: msg.answer})
		v.refresh()
		return v, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	cmds = append(cmds, cmd)
	v.vp, cmd = v.vp.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

// ask retrieves context and generates an answer in the background. Failures
// become the answer text so the conversation keeps flowing.
func (v *ChatView) ask(question string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		answer := v.generate(ctx, question)

		if v.deps.History != nil {
			// Transcript persistence is best effort.
			_ = v.deps.History.Append(ctx, v.username, models.RoleUser, question)
			_ = v.deps.History.Append(ctx, v.username, models.RoleAssistant, answer)
		}
		return answerMsg{question: question, answer: answer}
	}
}

func (v *ChatView) generate(ctx context.Context, question string) string {
	matches, err := v.deps.Retriever.Retrieve(ctx, question, v.deps.TopK)
	if err != nil {
		return fmt.Sprintf("⚠️ Error generating response: %v", err)
	}

	answer, err := v.deps.QA.Answer(ctx, question, matches)
	if err != nil {
		return fmt.Sprintf("⚠️ Error generating response: %v", err)
	}
	return answer
}

func (v *ChatView) refresh() {
	if !v.ready {
		return
	}
	var b strings.Builder
	for _, line := range v.lines {
		if line.role == models.RoleUser {
			b.WriteString(v.styles.User.Render("You: "))
		} else {
			b.WriteString(v.styles.Subtitle.Render("Mira: "))
		}
		b.WriteString(v.styles.Assistant.Render(line.content))
		b.WriteString("\n\n")
	}
	if v.thinking {
		b.WriteString(v.styles.Muted.Render("Mira is thinking..."))
		b.WriteString("\n")
	}
	v.vp.SetContent(b.String())
	v.vp.GotoBottom()
}

// View renders the transcript, the input box and the key help.
func (v *ChatView) View() string {
	if !v.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(v.vp.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Input.Render(v.input.View()))
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("enter ask · ctrl+e explore countries · ctrl+c quit"))
	return b.String()
}

package simupersona

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/viant/simupersona/genai/llm"
	"github.com/viant/simupersona/genai/persona"
)

// ChatCmd talks to a persona. With --query it sends a single message,
// otherwise it reads messages from STDIN until EOF or "exit".
type ChatCmd struct {
	PersonaID string `short:"p" long:"persona" description:"persona ID" required:"yes"`
	UserID    string `short:"u" long:"user" description:"caller user ID"`
	Query     string `short:"q" long:"query" description:"single message to send"`
	Provider  string `long:"provider" description:"AI provider (openai|azure|gemini), default from config"`
	Timeout   int    `short:"t" long:"timeout" description:"timeout in seconds per reply (0=none)"`
}

func (c *ChatCmd) Execute(_ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	p, err := a.personas.FindByID(ctx, c.PersonaID)
	if err != nil {
		return err
	}
	if err = p.CheckAccess(c.UserID); err != nil {
		return err
	}
	if c.Query != "" {
		_, err = c.ask(ctx, a, p, c.Query, nil, os.Stdout)
		return err
	}
	return c.loop(ctx, a, p, os.Stdin, os.Stdout)
}

func (c *ChatCmd) loop(ctx context.Context, a *app, p *persona.Persona, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, titleStyle.Render("Chatting with "+p.Name), dimStyle.Render("("+p.Profession+", type exit to quit)"))
	var history []llm.Message
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		message := strings.TrimSpace(scanner.Text())
		switch message {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		reply, err := c.ask(ctx, a, p, message, history, out)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("error:"), err)
			continue
		}
		history = llm.TruncateHistory(append(history, llm.NewUserMessage(message), llm.NewAssistantMessage(reply)), llm.MaxHistory)
	}
}

func (c *ChatCmd) ask(ctx context.Context, a *app, p *persona.Persona, message string, history []llm.Message, out io.Writer) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.Timeout)*time.Second)
		defer cancel()
	}
	result, err := a.chat.Generate(ctx, p, persona.Sanitize(message), c.Provider, history)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(out, titleStyle.Render(p.Name+":"), result.Text)
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("[%s/%s, %d tokens]", result.ProviderID, result.ModelID, result.TokensUsed)))
	return result.Text, nil
}

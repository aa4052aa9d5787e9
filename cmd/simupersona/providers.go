package simupersona

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/viant/simupersona/genai/llm/provider"
)

// ProvidersCmd prints the initialised providers and the default one.
type ProvidersCmd struct{}

func (c *ProvidersCmd) Execute(_ []string) error {
	a, err := newApp(context.Background())
	if err != nil {
		return err
	}
	printProviders(os.Stdout, a)
	return nil
}

func printProviders(w io.Writer, a *app) {
	available := a.chat.Providers()
	if len(available) == 0 {
		fmt.Fprintln(w, errorStyle.Render("no AI providers are configured"))
		return
	}
	def := a.chat.Default()
	for _, id := range available {
		info := provider.Describe(id)
		marker := "  "
		if id == def {
			marker = successStyle.Render("* ")
		}
		fmt.Fprintf(w, "%s%s %s %s\n", marker, titleStyle.Render(info.Name), idStyle.Render(a.chat.Model(id)), dimStyle.Render(info.Description))
	}
}

// TestCmd probes one provider, or all of them when none is named.
type TestCmd struct {
	Provider string `short:"p" long:"provider" description:"provider to test (default all)"`
}

func (c *TestCmd) Execute(_ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	ids := a.chat.Providers()
	if c.Provider != "" {
		ids = []string{c.Provider}
	}
	failed := 0
	for _, id := range ids {
		result := a.chat.TestConnection(ctx, id)
		if !result.Success {
			failed++
			fmt.Fprintln(os.Stdout, errorStyle.Render("✗ "+id), result.Error)
			continue
		}
		fmt.Fprintln(os.Stdout, successStyle.Render("✓ "+id), idStyle.Render(result.ModelID), dimStyle.Render(result.SampleText))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d providers failed", failed, len(ids))
	}
	return nil
}

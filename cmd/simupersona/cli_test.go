package simupersona

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/simupersona/genai/llm"
	"github.com/viant/simupersona/genai/llm/provider"
	"github.com/viant/simupersona/genai/persona"
	"github.com/viant/simupersona/genai/service/orchestrator"
	"github.com/viant/simupersona/internal/store"
)

func TestServeCmd_Flags(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		expect ServeCmd
	}{
		{
			name:   "defaults",
			args:   []string{},
			expect: ServeCmd{},
		},
		{
			name:   "all flags",
			args:   []string{"--addr", ":9000", "--gops", "--event-log", "events.jsonl", "--event", "LLM_INPUT", "--event", "LLM_ERROR"},
			expect: ServeCmd{Addr: ":9000", Gops: true, EventLog: "events.jsonl", Events: []string{"LLM_INPUT", "LLM_ERROR"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := &ServeCmd{}
			parser := flags.NewParser(cmd, flags.HelpFlag|flags.PassDoubleDash)
			_, err := parser.ParseArgs(tc.args)
			assert.EqualValues(t, nil, err)
			assert.EqualValues(t, tc.expect, *cmd)
		})
	}
}

func TestPersonasCmd_Flags(t *testing.T) {
	cmd := &PersonasCmd{}
	parser := flags.NewParser(cmd, flags.HelpFlag|flags.PassDoubleDash)
	_, err := parser.ParseArgs([]string{"-u", "A", "--tone", "warm"})
	require.NoError(t, err)
	assert.EqualValues(t, &PersonasCmd{UserID: "A", Tone: "warm", Limit: 10}, cmd)

	_, err = flags.NewParser(&PersonasCmd{}, flags.HelpFlag).ParseArgs([]string{})
	assert.Error(t, err, "user is required")
}

func TestExtractGlobalFlags(t *testing.T) {
	cases := []struct {
		name         string
		args         []string
		expectConfig string
		expectEnv    []string
	}{
		{name: "none", args: []string{"serve"}},
		{name: "short", args: []string{"-f", "app.yaml", "-e", "prod.env", "serve"}, expectConfig: "app.yaml", expectEnv: []string{"prod.env"}},
		{name: "long with equals", args: []string{"--config=s3://bucket/app.yaml", "--env=a.env", "--env", "b.env"}, expectConfig: "s3://bucket/app.yaml", expectEnv: []string{"a.env", "b.env"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualValues(t, tc.expectConfig, extractConfigPath(tc.args))
			assert.EqualValues(t, tc.expectEnv, extractEnvFiles(tc.args))
		})
	}
}

type echoProvider struct {
	histories [][]llm.Message
}

func (e *echoProvider) ID() string    { return "openai" }
func (e *echoProvider) Model() string { return "gpt-3.5-turbo" }

func (e *echoProvider) Send(ctx context.Context, systemPrompt string, history []llm.Message, userMessage string) (*llm.Reply, error) {
	e.histories = append(e.histories, history)
	return &llm.Reply{Text: "echo " + userMessage, TokensUsed: 3}, nil
}

func (e *echoProvider) Test(ctx context.Context) (*llm.Probe, error) {
	return &llm.Probe{Model: "gpt-3.5-turbo", SampleText: "ok"}, nil
}

func newTestApp(t *testing.T, providers ...llm.Provider) *app {
	personas := store.New("mem://localhost/" + t.Name() + "/personas.json")
	require.NoError(t, personas.Init(context.Background()))
	registry := provider.NewRegistry("openai", providers...)
	return &app{registry: registry, chat: orchestrator.New(registry), personas: personas}
}

func TestChatCmd_Loop(t *testing.T) {
	echo := &echoProvider{}
	a := newTestApp(t, echo)
	p := &persona.Persona{ID: "p1", Name: "Ada", Profession: "Teacher", Tone: "warm", Goals: "teach", OwnerID: "A"}

	out := &bytes.Buffer{}
	cmd := &ChatCmd{PersonaID: p.ID}
	err := cmd.loop(context.Background(), a, p, strings.NewReader("hello\n\nagain\nexit\nignored\n"), out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "echo hello")
	assert.Contains(t, out.String(), "echo again")
	assert.NotContains(t, out.String(), "echo ignored")
	require.Len(t, echo.histories, 2)
	assert.Empty(t, echo.histories[0])
	assert.EqualValues(t, []llm.Message{llm.NewUserMessage("hello"), llm.NewAssistantMessage("echo hello")}, echo.histories[1])
}

func TestPrintProviders(t *testing.T) {
	out := &bytes.Buffer{}
	printProviders(out, newTestApp(t, &echoProvider{}))
	assert.Contains(t, out.String(), "gpt-3.5-turbo")

	out.Reset()
	printProviders(out, newTestApp(t))
	assert.Contains(t, out.String(), "no AI providers are configured")
}

func TestPrintPage(t *testing.T) {
	page := &store.Page{
		Items: []*persona.Persona{
			{ID: "p1", Name: "Ada", Profession: "Teacher", Tone: "warm", OwnerID: "A"},
			{ID: "p2", Name: "Bob", Profession: "Chef", Tone: "lively", OwnerID: "B", IsPublic: true},
		},
		Pagination: store.Pagination{Total: 3, Limit: 2, HasMore: true},
	}
	out := &bytes.Buffer{}
	printPage(out, page, "A")
	text := out.String()
	assert.Contains(t, text, "Ada")
	assert.Contains(t, text, "own")
	assert.Contains(t, text, "public")
	assert.Contains(t, text, "2 of 3 (offset 0, more available)")
}

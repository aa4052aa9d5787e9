package persona

import (
	"fmt"
	"strings"
	"text/template"
)

const systemPromptText = `You are {{.Name}}, a {{.Profession}} with the following characteristics:

TONE: {{.Tone}}
GOALS: {{.Goals}}
PERSONALITY TRAITS: {{join .PersonalityTraits ", "}}
BACKGROUND: {{.Background}}
SPEAKING STYLE: {{.SpeakingStyle}}
EXPERTISE AREAS: {{join .ExpertiseAreas ", "}}
INTERESTS: {{.Interests}}

Please respond to all messages as this character would, maintaining consistency with these traits.
Stay in character at all times and provide responses that reflect this persona's unique perspective,
knowledge, and way of communicating.`

const starterPromptText = `Generate {{.Count}} conversation starter questions that someone might ask {{.Name}}, a {{.Profession}}.
Consider their tone ({{.Tone}}), goals ({{.Goals}}), and expertise areas ({{join .ExpertiseAreas ", "}}).
Return only the questions, one per line, without numbering or additional text.`

var funcs = template.FuncMap{"join": strings.Join}

var (
	systemPrompt  = template.Must(template.New("system").Funcs(funcs).Parse(systemPromptText))
	starterPrompt = template.Must(template.New("starter").Funcs(funcs).Parse(starterPromptText))
)

// Compile renders the system prompt for p. Equal personas always produce
// identical prompts; empty optional fields leave an empty slot.
func Compile(p *Persona) string {
	return render(systemPrompt, p)
}

// StarterPrompt renders the request used to generate count conversation
// starters for p.
func StarterPrompt(p *Persona, count int) string {
	return render(starterPrompt, struct {
		*Persona
		Count int
	}{Persona: p, Count: count})
}

func render(tmpl *template.Template, data interface{}) string {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("persona: %s template: %v", tmpl.Name(), err))
	}
	return buf.String()
}

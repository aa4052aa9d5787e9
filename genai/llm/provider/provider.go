package provider

import (
	"github.com/viant/simupersona/genai/llm/provider/azure"
	"github.com/viant/simupersona/genai/llm/provider/gemini"
	"github.com/viant/simupersona/genai/llm/provider/openai"
)

const (
	// ProviderOpenAI identifies OpenAI API
	ProviderOpenAI = openai.ProviderID

	// ProviderAzure identifies Azure OpenAI API
	ProviderAzure = azure.ProviderID

	// ProviderGeminiAI identifies Google Gemini API
	ProviderGeminiAI = gemini.ProviderID
)

// Known lists supported provider ids in preference order.
var Known = []string{ProviderOpenAI, ProviderAzure, ProviderGeminiAI}

// Info describes a provider for listings.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Model       string `json:"model,omitempty"`
}

var descriptions = map[string]Info{
	ProviderOpenAI:   {Name: "OpenAI", Description: "OpenAI chat completions models"},
	ProviderAzure:    {Name: "Azure OpenAI", Description: "OpenAI models hosted on an Azure deployment"},
	ProviderGeminiAI: {Name: "Google Gemini", Description: "Google Gemini generative models"},
}

// Describe returns listing info for id.
func Describe(id string) Info {
	if info, ok := descriptions[id]; ok {
		return info
	}
	return Info{Name: id}
}

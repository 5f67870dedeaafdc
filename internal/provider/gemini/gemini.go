package gemini

import (
	"context"

	"github.com/Cyclone1070/aish/internal/provider"
	"github.com/Cyclone1070/aish/internal/tool"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

// GeminiProvider generates assistant messages with Google Gemini.
type GeminiProvider struct {
	client    GeminiClient
	modelName string
	maxTokens int
	newID     func() string
}

// New creates a new GeminiProvider with the specified client and model.
func New(client GeminiClient, modelName string, maxTokens int) *GeminiProvider {
	if client == nil {
		panic("client is required")
	}
	return &GeminiProvider{
		client:    client,
		modelName: modelName,
		maxTokens: maxTokens,
		newID:     func() string { return "call_" + uuid.NewString() },
	}
}

// Generate sends the conversation to Gemini and returns the model's reply
// in the same shape as the OpenAI transport.
func (p *GeminiProvider) Generate(ctx context.Context, messages []provider.Message, decls []tool.Declaration) (*provider.Message, error) {
	system, contents, err := toGeminiContents(messages)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: system,
		MaxOutputTokens:   int32(p.maxTokens),
		Tools:             toGeminiTools(decls),
	}

	resp, err := p.client.GenerateContent(ctx, p.modelName, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	return fromGeminiResponse(resp, p.newID)
}

// TestAPIKey sends a minimal request to check that the key works.
func (p *GeminiProvider) TestAPIKey(ctx context.Context) error {
	_, err := p.client.GenerateContent(ctx, p.modelName,
		[]*genai.Content{genai.NewContentFromText("Hi", genai.RoleUser)},
		&genai.GenerateContentConfig{MaxOutputTokens: 5})
	return mapGeminiError(err)
}

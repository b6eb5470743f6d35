package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

// Generator turns a user prompt into the raw JSON text of a suggestion.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = errors.New("API key not valid: GEMINI_API_KEY is not set")

var systemInstruction = `Ты — эксперт по строительным сметам.
Твоя задача: составить детальный список работ и материалов для указанного ремонта.
ПРАВИЛА:
1. Ответ должен быть СТРОГО в формате JSON.
2. Используй только следующие единицы измерения: ` + quotedUnits() + `.
3. Цены указывай в рублях, ориентируясь на средние рыночные показатели 2024-2025 гг.
4. Разделяй работы по логическим категориям (например: Демонтаж, Электрика, Отделка стен).
5. В поле 'advice' дай 3-4 важных профессиональных совета именно для этого типа работ.`

func quotedUnits() string {
	parts := make([]string, 0, len(domain.Units))
	for _, u := range domain.Units {
		parts = append(parts, "'"+string(u)+"'")
	}
	return strings.Join(parts, ", ")
}

func responseSchema() *genai.Schema {
	unitEnum := make([]string, 0, len(domain.Units))
	for _, u := range domain.Units {
		unitEnum = append(unitEnum, string(u))
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"items": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":           {Type: genai.TypeString, Description: "Название работы или материала"},
						"category":       {Type: genai.TypeString, Description: "Категория работ"},
						"unit":           {Type: genai.TypeString, Description: "Единица измерения (только из списка)", Enum: unitEnum},
						"quantity":       {Type: genai.TypeNumber, Description: "Необходимое количество"},
						"estimatedPrice": {Type: genai.TypeNumber, Description: "Примерная цена за единицу"},
					},
					Required: []string{"name", "category", "unit", "quantity", "estimatedPrice"},
				},
			},
			"advice": {Type: genai.TypeString, Description: "Советы по ремонту"},
		},
		Required: []string{"items", "advice"},
	}
}

// GeminiGenerator calls the Gemini API with a fixed system instruction
// and a JSON response schema.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = responseSchema()

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(fmt.Sprintf("Запрос пользователя: %q", prompt)))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", errEmptyResponse
	}
	return b.String(), nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// unconfigured stands in when the service runs without an API key.
type unconfigured struct{}

func (unconfigured) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

// Unconfigured returns a Generator that always fails with ErrNotConfigured.
func Unconfigured() Generator {
	return unconfigured{}
}

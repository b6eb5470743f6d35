package suggest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

type fakeGenerator struct {
	text   string
	err    error
	delay  time.Duration
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

const sampleJSON = `{"items":[{"name":"Демонтаж плитки","category":"Демонтаж","unit":"м2","quantity":12,"estimatedPrice":450}],"advice":"Проверьте стяжку"}`

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"plain":      sampleJSON,
		"fenced":     "```json\n" + sampleJSON + "\n```",
		"bare fence": "```\n" + sampleJSON + "\n```",
		"padded":     "  \n" + sampleJSON + "\n ",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, sampleJSON, stripFences(in))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("decodes items and advice", func(t *testing.T) {
		s, err := Parse("```json\n" + sampleJSON + "\n```")
		require.NoError(t, err)
		require.Len(t, s.Items, 1)
		assert.Equal(t, "Демонтаж плитки", s.Items[0].Name)
		assert.Equal(t, 450.0, s.Items[0].EstimatedPrice)
		assert.Equal(t, "Проверьте стяжку", s.Advice)
	})

	t.Run("rejects malformed output", func(t *testing.T) {
		_, err := Parse("not json")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects empty output", func(t *testing.T) {
		_, err := Parse("   ")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing items become empty list", func(t *testing.T) {
		s, err := Parse(`{"advice":"ok"}`)
		require.NoError(t, err)
		assert.NotNil(t, s.Items)
		assert.Empty(t, s.Items)
	})
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"api key marker", errors.New("googleapi: Error 400: API key not valid. Please pass a valid API key."), ErrInvalidCredential},
		{"invalid argument marker", errors.New("rpc error: code = INVALID_ARGUMENT"), ErrInvalidCredential},
		{"not configured", ErrNotConfigured, ErrInvalidCredential},
		{"forbidden", &googleapi.Error{Code: 403, Message: "permission denied"}, ErrInvalidCredential},
		{"rate limited upstream", &googleapi.Error{Code: 429, Message: "quota"}, ErrTransient},
		{"server error", &googleapi.Error{Code: 503, Message: "unavailable"}, ErrTransient},
		{"bad request", &googleapi.Error{Code: 400, Message: "bad schema"}, ErrValidation},
		{"empty prompt", domain.ErrEmptyPrompt, ErrValidation},
		{"timeout", context.DeadlineExceeded, ErrTransient},
		{"network", errors.New("dial tcp: connection refused"), ErrTransient},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err)
			assert.ErrorIs(t, got, tc.want)
			assert.ErrorIs(t, got, tc.err)
		})
	}
	assert.NoError(t, Classify(nil))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Проблема с API-ключом. Пожалуйста, выберите корректный ключ.",
		UserMessage(errors.New("API key not valid")))
	assert.Equal(t, "Ошибка: dial tcp: connection refused",
		UserMessage(Classify(errors.New("dial tcp: connection refused"))))
	assert.Equal(t, "Ошибка: проверьте интернет или попробуйте позже",
		UserMessage(&Error{Kind: ErrTransient, Err: errors.New("")}))
	assert.Equal(t, "", UserMessage(nil))
}

func TestService_Suggest(t *testing.T) {
	ResetMetrics()
	gen := &fakeGenerator{text: sampleJSON}
	svc := NewService(gen, Options{})

	s, err := svc.Suggest(context.Background(), "  ремонт ванной 4 м2  ")
	require.NoError(t, err)
	assert.Equal(t, "ремонт ванной 4 м2", gen.prompt)
	assert.Len(t, s.Items, 1)

	m := GetMetrics()
	assert.Equal(t, int64(1), m.Calls())
	assert.Equal(t, int64(0), m.Errors())
}

func TestService_SuggestErrors(t *testing.T) {
	t.Run("empty prompt never reaches the model", func(t *testing.T) {
		ResetMetrics()
		gen := &fakeGenerator{text: sampleJSON}
		_, err := NewService(gen, Options{}).Suggest(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, domain.ErrEmptyPrompt)
		assert.Equal(t, "", gen.prompt)
		assert.Equal(t, int64(1), GetMetrics().Rejected())
	})

	t.Run("credential failure", func(t *testing.T) {
		ResetMetrics()
		gen := &fakeGenerator{err: fmt.Errorf("generate: %w", errors.New("API key not valid"))}
		_, err := NewService(gen, Options{}).Suggest(context.Background(), "кухня")
		assert.ErrorIs(t, err, ErrInvalidCredential)
		assert.Equal(t, int64(1), GetMetrics().CredentialErrors())
		assert.Equal(t, 100.0, GetMetrics().ErrorRate())
	})

	t.Run("timeout is transient", func(t *testing.T) {
		gen := &fakeGenerator{text: sampleJSON, delay: time.Second}
		_, err := NewService(gen, Options{Timeout: 20 * time.Millisecond}).Suggest(context.Background(), "кухня")
		assert.ErrorIs(t, err, ErrTransient)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("rate limited", func(t *testing.T) {
		gen := &fakeGenerator{text: sampleJSON}
		svc := NewService(gen, Options{RatePerMinute: 1})
		_, err := svc.Suggest(context.Background(), "первый")
		require.NoError(t, err)
		_, err = svc.Suggest(context.Background(), "второй")
		assert.ErrorIs(t, err, ErrTransient)
		assert.Equal(t, "первый", gen.prompt)
	})

	t.Run("unconfigured generator", func(t *testing.T) {
		_, err := NewService(Unconfigured(), Options{}).Suggest(context.Background(), "кухня")
		assert.ErrorIs(t, err, ErrInvalidCredential)
		assert.Equal(t, "Проблема с API-ключом. Пожалуйста, выберите корректный ключ.", UserMessage(err))
	})
}

func TestSystemInstructionListsUnits(t *testing.T) {
	for _, u := range domain.Units {
		assert.Contains(t, systemInstruction, "'"+string(u)+"'")
	}
	schema := responseSchema()
	assert.Equal(t, []string{"items", "advice"}, schema.Required)
	assert.Len(t, schema.Properties["items"].Items.Properties["unit"].Enum, len(domain.Units))
}

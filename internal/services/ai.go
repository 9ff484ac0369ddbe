package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/workmatch-api/internal/constants"
	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrSuggestionInputEmpty   = apierrors.Validation("title or description is required", "title", "description")
)

// ChatCompleter is the slice of the OpenAI client the suggester needs
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// SkillSuggester proposes required skill tags for a job posting using OpenAI GPT
type SkillSuggester struct {
	client ChatCompleter
}

// NewSkillSuggester returns a suggester for apiKey; an empty key yields a suggester that reports ErrAIServiceNotConfigured
func NewSkillSuggester(apiKey string) *SkillSuggester {
	if apiKey == "" {
		return &SkillSuggester{}
	}
	return &SkillSuggester{client: openai.NewClient(apiKey)}
}

// NewSkillSuggesterWithClient wraps an existing chat client
func NewSkillSuggesterWithClient(client ChatCompleter) *SkillSuggester {
	return &SkillSuggester{client: client}
}

// Configured reports whether the suggester has a client
func (s *SkillSuggester) Configured() bool {
	return s != nil && s.client != nil
}

// SuggestSkills asks the model for skill tags matching a job title and description
func (s *SkillSuggester) SuggestSkills(ctx context.Context, title, description string) ([]string, error) {
	if !s.Configured() {
		return nil, ErrAIServiceNotConfigured
	}
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" && description == "" {
		return nil, ErrSuggestionInputEmpty
	}

	prompt := fmt.Sprintf(`You help employers tag job postings with the skills a worker needs.

Job title: %s

Job description:
%s

Return a JSON array of at most %d short skill tags, for example:
["plumbing", "pipe fitting", "customer service"]

Rules:
- Use lowercase tags of one to three words
- Return [] when no skill can be inferred
- Return only the JSON array, without any explanation`, title, description, constants.MaxSuggestedSkills)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var skills []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &skills); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	skills = NormalizeSkills(skills)
	if len(skills) > constants.MaxSuggestedSkills {
		skills = skills[:constants.MaxSuggestedSkills]
	}
	return skills, nil
}

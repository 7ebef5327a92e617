// Package rewriting sends a job record and the extracted LaTeX sections to the
// rewrite service and parses the tailored sections it returns.
package rewriting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/types"
	"go.uber.org/zap"
)

const (
	promptFile = "rewriting.json"
	promptKey  = "tailor-resume"

	// absentSection is what the prompt shows for a section with no source text
	absentSection = "None"
)

// Rewriter produces tailored LaTeX for the extracted sections of a template
type Rewriter interface {
	Rewrite(ctx context.Context, job *types.JobRecord, content types.ExtractedContent) (types.TailoredContent, error)
}

// ClientFactory creates the LLM client used for one rewrite
type ClientFactory func(ctx context.Context, config *llm.Config, apiKey string) (llm.Client, error)

// Config holds the credential and call settings for the rewrite service
type Config struct {
	APIKey         string
	Model          string
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// Service is the Rewriter backed by an LLM
type Service struct {
	config    Config
	newClient ClientFactory
}

// NewService creates a Service. No client is created until Rewrite is called,
// so a missing key only fails the rewrite itself.
func NewService(config Config) *Service {
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryBaseDelay <= 0 {
		config.RetryBaseDelay = llm.DefaultRetryBaseDelay
	}
	return &Service{config: config, newClient: llm.NewClient}
}

// WithClientFactory replaces how the LLM client is created
func (s *Service) WithClientFactory(factory ClientFactory) *Service {
	s.newClient = factory
	return s
}

// Rewrite implements Rewriter
func (s *Service) Rewrite(ctx context.Context, job *types.JobRecord, content types.ExtractedContent) (types.TailoredContent, error) {
	if job == nil {
		return nil, fmt.Errorf("job record is required")
	}
	if s.config.APIKey == "" {
		return nil, &ServiceError{Message: "API key is required (set GEMINI_API_KEY)", Cause: llm.ErrMissingAPIKey}
	}

	prompt, err := BuildPrompt(job, content)
	if err != nil {
		return nil, err
	}

	llmConfig := llm.DefaultConfig()
	if s.config.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, s.config.Model)
	}

	client, err := s.newClient(ctx, llmConfig, s.config.APIKey)
	if err != nil {
		return nil, &ServiceError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	retrying := llm.NewRetryClient(client, s.config.MaxRetries, s.config.RetryBaseDelay)
	reply, err := retrying.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &ServiceError{Message: "failed to generate tailored content", Cause: err}
	}

	tailored, err := ParseResponse(reply)
	if err != nil {
		return nil, err
	}

	logStructureDrift(content, tailored)
	return tailored, nil
}

// BuildPrompt fills the rewrite prompt with the job record and the raw section text
func BuildPrompt(job *types.JobRecord, content types.ExtractedContent) (string, error) {
	template, err := prompts.Get(promptFile, promptKey)
	if err != nil {
		return "", err
	}

	return prompts.Format(template, map[string]string{
		"Position":    job.Position,
		"Description": job.Description,
		"Experience":  rawOrNone(content.Get(types.SectionExperience)),
		"Skills":      rawOrNone(content.Get(types.SectionSkills)),
	}), nil
}

func rawOrNone(c types.SectionContent) string {
	if raw := c.RawOrNil(); raw != nil {
		return *raw
	}
	return absentSection
}

type tailoredReply struct {
	Experience *string `json:"experience"`
	Skills     *string `json:"skills"`
}

// ParseResponse validates a service reply and decodes it into TailoredContent.
// A null section is left out of the result.
func ParseResponse(reply string) (types.TailoredContent, error) {
	cleaned := llm.CleanJSONBlock(reply)

	if err := schemas.ValidateTailoredContent(cleaned); err != nil {
		var loadErr *schemas.SchemaLoadError
		if errors.As(err, &loadErr) {
			return nil, &InvalidResponseError{Message: "response is not valid JSON", Response: reply, Cause: err}
		}
		return nil, &InvalidResponseError{Message: "response does not match the tailored content schema", Response: reply, Cause: err}
	}

	var decoded tailoredReply
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, &InvalidResponseError{Message: "failed to decode response", Response: reply, Cause: err}
	}

	tailored := types.TailoredContent{}
	if decoded.Experience != nil {
		tailored[types.SectionExperience] = *decoded.Experience
	}
	if decoded.Skills != nil {
		tailored[types.SectionSkills] = *decoded.Skills
	}
	return tailored, nil
}

func logStructureDrift(content types.ExtractedContent, tailored types.TailoredContent) {
	log := zap.S().Named("rewriting")
	for _, section := range types.Sections() {
		original := content.Get(section)
		text, ok := tailored[section]
		if !original.Available || !ok {
			continue
		}
		for _, issue := range CheckStructure(original.Raw, text) {
			log.Warnw("tailored section differs structurally from the original",
				"section", section,
				"issue", issue,
			)
		}
	}
}

// EncodeResponse renders tailored content in the reply format ParseResponse accepts,
// with null for a missing section.
func EncodeResponse(tailored types.TailoredContent) ([]byte, error) {
	var reply tailoredReply
	if text, ok := tailored[types.SectionExperience]; ok {
		reply.Experience = &text
	}
	if text, ok := tailored[types.SectionSkills]; ok {
		reply.Skills = &text
	}
	return json.MarshalIndent(reply, "", "  ")
}

package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type TutorRequest struct {
	Question       string `json:"question" validate:"required,min=1,max=4000"`
	CourseMaterial string `json:"courseMaterial" validate:"max=20000"`
}

type TutorResponse struct {
	Answer string `json:"answer" validate:"required"`
}

type SummarizeRequest struct {
	Text string `json:"text" validate:"required,min=1,max=50000"`
}

type SummarizeResponse struct {
	Summary string `json:"summary" validate:"required"`
}

type QuizRequest struct {
	SourceText   string `json:"sourceText" validate:"required,min=1,max=50000"`
	NumQuestions int    `json:"numQuestions" validate:"required,min=1,max=10"`
}

type QuizQuestion struct {
	QuestionText       string   `json:"questionText" validate:"required"`
	Options            []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex" validate:"min=0,max=3"`
	Explanation        string   `json:"explanation" validate:"required"`
}

type QuizResponse struct {
	Questions []QuizQuestion `json:"questions" validate:"required,min=1,dive"`
}

type StudyPlanRequest struct {
	SubjectTitles []string `json:"subjectTitles" validate:"required,min=1,max=30,dive,required"`
	WeeklyHours   int      `json:"weeklyHours" validate:"required,min=1,max=100"`
	Deadlines     string   `json:"deadlines" validate:"max=2000"`
}

type PlanSession struct {
	SubjectTitle string `json:"subjectTitle" validate:"required"`
	Day          string `json:"day" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Topic        string `json:"topic" validate:"required"`
	Description  string `json:"description"`
}

type StudyPlanResponse struct {
	Plan []PlanSession `json:"plan" validate:"required,min=1,dive"`
}

// Service runs the generation flows. Each flow embeds the expected JSON
// shape in the prompt and refuses any completion that does not decode and
// validate against it; a confidently wrong payload is worse than an error.
type Service interface {
	Tutor(ctx context.Context, req *TutorRequest) (*TutorResponse, error)
	Summarize(ctx context.Context, req *SummarizeRequest) (*SummarizeResponse, error)
	GenerateQuiz(ctx context.Context, req *QuizRequest) (*QuizResponse, error)
	GenerateStudyPlan(ctx context.Context, req *StudyPlanRequest) (*StudyPlanResponse, error)
}

type service struct {
	client   Client
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewService(client Client, validate *validator.Validate, logger zerolog.Logger) Service {
	return &service{
		client:   client,
		validate: validate,
		logger:   logger,
	}
}

func (s *service) Tutor(ctx context.Context, req *TutorRequest) (*TutorResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var prompt strings.Builder
	prompt.WriteString("You are a helpful AI tutor for students. Answer the question clearly and concisely.\n")
	if req.CourseMaterial != "" {
		prompt.WriteString("Base your answer on the following course material where relevant:\n---\n")
		prompt.WriteString(req.CourseMaterial)
		prompt.WriteString("\n---\n")
	}
	prompt.WriteString("Question: ")
	prompt.WriteString(req.Question)
	prompt.WriteString("\n\nRespond with only a JSON object of the form {\"answer\": string}.")

	out := &TutorResponse{}
	if err := s.complete(ctx, "tutor", prompt.String(), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Summarize(ctx context.Context, req *SummarizeRequest) (*SummarizeResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Summarize the following study text into key points a student can revise from.\n---\n%s\n---\n\nRespond with only a JSON object of the form {\"summary\": string}.",
		req.Text)

	out := &SummarizeResponse{}
	if err := s.complete(ctx, "summarizer", prompt, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) GenerateQuiz(ctx context.Context, req *QuizRequest) (*QuizResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		`Create a multiple-choice quiz with exactly %d questions from the following text.
---
%s
---

Respond with only a JSON object of the form:
{"questions": [{"questionText": string, "options": [string, string, string, string], "correctAnswerIndex": number between 0 and 3, "explanation": string}]}`,
		req.NumQuestions, req.SourceText)

	out := &QuizResponse{}
	if err := s.complete(ctx, "quiz", prompt, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) GenerateStudyPlan(ctx context.Context, req *StudyPlanRequest) (*StudyPlanResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var prompt strings.Builder
	prompt.WriteString("Create a weekly study plan for a student.\n")
	prompt.WriteString("Subjects: ")
	prompt.WriteString(strings.Join(req.SubjectTitles, ", "))
	fmt.Fprintf(&prompt, "\nAvailable study hours per week: %d\n", req.WeeklyHours)
	if req.Deadlines != "" {
		prompt.WriteString("Upcoming deadlines and exams:\n")
		prompt.WriteString(req.Deadlines)
		prompt.WriteString("\n")
	}
	prompt.WriteString(`
Respond with only a JSON object of the form:
{"plan": [{"subjectTitle": string, "day": weekday name, "time": string like "18:00 - 19:00", "topic": string, "description": string}]}`)

	out := &StudyPlanResponse{}
	if err := s.complete(ctx, "study plan", prompt.String(), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) complete(ctx context.Context, flow, prompt string, out interface{}) error {
	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("flow", flow).Msg("Completion request failed")
		return ErrUnavailable
	}

	if err := DecodeCompletion(raw, out); err != nil {
		s.logger.Error().Err(err).Str("flow", flow).Msg("Completion did not match expected shape")
		return ErrUnavailable
	}

	if err := s.validate.Struct(out); err != nil {
		s.logger.Error().Err(err).Str("flow", flow).Msg("Completion failed validation")
		return ErrUnavailable
	}

	return nil
}

// DecodeCompletion parses a model completion as JSON, tolerating the
// markdown code fences models often wrap payloads in.
func DecodeCompletion(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("failed to decode completion: %w", err)
	}
	return nil
}

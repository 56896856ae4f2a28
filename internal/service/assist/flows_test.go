package assist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func newTestService(client *fakeClient) Service {
	return NewService(client, validator.New(), zerolog.Nop())
}

func TestDecodeCompletion(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "plain json", raw: `{"answer": "42"}`},
		{name: "fenced json", raw: "```json\n{\"answer\": \"42\"}\n```"},
		{name: "bare fence", raw: "```\n{\"answer\": \"42\"}\n```"},
		{name: "prose", raw: "The answer is 42.", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out TutorResponse
			err := DecodeCompletion(tt.raw, &out)
			if tt.wantErr {
				if err == nil {
					t.Error("expected decode error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeCompletion returned error: %v", err)
			}
			if out.Answer != "42" {
				t.Errorf("Answer = %q, want 42", out.Answer)
			}
		})
	}
}

func TestTutorIncludesCourseMaterial(t *testing.T) {
	client := &fakeClient{response: `{"answer": "Entropy always increases."}`}
	svc := newTestService(client)

	resp, err := svc.Tutor(context.Background(), &TutorRequest{
		Question:       "What is the second law?",
		CourseMaterial: "Chapter 4: Thermodynamics",
	})
	if err != nil {
		t.Fatalf("Tutor returned error: %v", err)
	}
	if resp.Answer == "" {
		t.Error("expected an answer")
	}
	if !strings.Contains(client.prompt, "Chapter 4: Thermodynamics") {
		t.Error("prompt should carry the course material")
	}
	if !strings.Contains(client.prompt, "What is the second law?") {
		t.Error("prompt should carry the question")
	}
}

func TestTutorRejectsEmptyQuestion(t *testing.T) {
	svc := newTestService(&fakeClient{response: `{"answer": "x"}`})

	if _, err := svc.Tutor(context.Background(), &TutorRequest{Question: ""}); err == nil {
		t.Error("expected validation error for empty question")
	}
}

func TestQuizRejectsMalformedCompletion(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "prose instead of json", response: "Here are your questions!"},
		{name: "empty question list", response: `{"questions": []}`},
		{
			name:     "wrong option count",
			response: `{"questions": [{"questionText": "Q?", "options": ["a", "b"], "correctAnswerIndex": 0, "explanation": "e"}]}`,
		},
		{
			name:     "answer index out of range",
			response: `{"questions": [{"questionText": "Q?", "options": ["a", "b", "c", "d"], "correctAnswerIndex": 7, "explanation": "e"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeClient{response: tt.response})

			_, err := svc.GenerateQuiz(context.Background(), &QuizRequest{
				SourceText:   "Some chapter text.",
				NumQuestions: 3,
			})
			if !errors.Is(err, ErrUnavailable) {
				t.Errorf("err = %v, want ErrUnavailable", err)
			}
		})
	}
}

func TestQuizAcceptsValidCompletion(t *testing.T) {
	svc := newTestService(&fakeClient{response: "```json\n" + `{"questions": [{
		"questionText": "What is H2O?",
		"options": ["Water", "Salt", "Sugar", "Air"],
		"correctAnswerIndex": 0,
		"explanation": "H2O is the chemical formula for water."
	}]}` + "\n```"})

	resp, err := svc.GenerateQuiz(context.Background(), &QuizRequest{
		SourceText:   "Chemistry basics.",
		NumQuestions: 1,
	})
	if err != nil {
		t.Fatalf("GenerateQuiz returned error: %v", err)
	}
	if len(resp.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(resp.Questions))
	}
	if resp.Questions[0].CorrectAnswerIndex != 0 {
		t.Errorf("CorrectAnswerIndex = %d, want 0", resp.Questions[0].CorrectAnswerIndex)
	}
}

func TestQuizRequestBounds(t *testing.T) {
	svc := newTestService(&fakeClient{response: `{"questions": []}`})

	for _, n := range []int{0, 11, -1} {
		if _, err := svc.GenerateQuiz(context.Background(), &QuizRequest{
			SourceText:   "text",
			NumQuestions: n,
		}); err == nil {
			t.Errorf("NumQuestions=%d should fail validation", n)
		}
	}
}

func TestStudyPlanFlow(t *testing.T) {
	client := &fakeClient{response: `{"plan": [{
		"subjectTitle": "Physics",
		"day": "Monday",
		"time": "18:00 - 19:00",
		"topic": "Kinematics",
		"description": "Revise chapter 2."
	}]}`}
	svc := newTestService(client)

	resp, err := svc.GenerateStudyPlan(context.Background(), &StudyPlanRequest{
		SubjectTitles: []string{"Physics", "Chemistry"},
		WeeklyHours:   10,
		Deadlines:     "Physics exam on Friday",
	})
	if err != nil {
		t.Fatalf("GenerateStudyPlan returned error: %v", err)
	}
	if len(resp.Plan) != 1 || resp.Plan[0].SubjectTitle != "Physics" {
		t.Errorf("unexpected plan: %+v", resp.Plan)
	}
	if !strings.Contains(client.prompt, "Physics, Chemistry") {
		t.Error("prompt should list the subjects")
	}
	if !strings.Contains(client.prompt, "Physics exam on Friday") {
		t.Error("prompt should carry the deadlines")
	}
}

func TestClientErrorBecomesUnavailable(t *testing.T) {
	svc := newTestService(&fakeClient{err: errors.New("backend down")})

	_, err := svc.Summarize(context.Background(), &SummarizeRequest{Text: "some text"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

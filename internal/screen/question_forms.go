package screen

import (
	"context"
	"fmt"
	"strings"

	"quizdesk/pkg/catalog"
)

// BlankOptionCount is how many empty options a new question starts with.
const BlankOptionCount = 4

// QuestionFormData holds the editable question fields.
type QuestionFormData struct {
	Text               string
	Options            []string
	CorrectAnswerIndex int
	Keywords           []string
	Original           catalog.Question
	SavedID            string
}

func blankQuestionForm() QuestionFormData {
	return QuestionFormData{Options: make([]string, BlankOptionCount)}
}

func questionFormFrom(question catalog.Question) QuestionFormData {
	return QuestionFormData{
		Text:               question.Text,
		Options:            append([]string(nil), question.Options...),
		CorrectAnswerIndex: question.CorrectAnswerIndex,
		Keywords:           append([]string(nil), question.Keywords...),
		Original:           question,
		SavedID:            question.ID,
	}
}

// fill copies the edited fields onto a candidate question.
func (d QuestionFormData) fill(question catalog.Question) catalog.Question {
	question.Text = strings.TrimSpace(d.Text)
	question.Options = append([]string(nil), d.Options...)
	question.CorrectAnswerIndex = d.CorrectAnswerIndex
	question.Keywords = cleanKeywords(d.Keywords)
	return question
}

type questionFields struct {
	ctrl *Controller[QuestionFormData]
}

func (f questionFields) edit(fn func(*QuestionFormData) error) error {
	return f.ctrl.Edit(func(d QuestionFormData) (QuestionFormData, error) {
		d.Options = append([]string(nil), d.Options...)
		d.Keywords = append([]string(nil), d.Keywords...)
		if err := fn(&d); err != nil {
			return d, err
		}
		return d, nil
	})
}

func (f questionFields) SetText(text string) error {
	return f.edit(func(d *QuestionFormData) error {
		d.Text = text
		return nil
	})
}

// SetOption replaces the option at index.
func (f questionFields) SetOption(index int, value string) error {
	return f.edit(func(d *QuestionFormData) error {
		if index < 0 || index >= len(d.Options) {
			return fmt.Errorf("option %d out of range", index)
		}
		d.Options[index] = value
		return nil
	})
}

// SetOptions replaces every option at once. The correct answer is reset to
// the first option when it no longer exists.
func (f questionFields) SetOptions(options []string) error {
	return f.edit(func(d *QuestionFormData) error {
		d.Options = append([]string(nil), options...)
		if d.CorrectAnswerIndex >= len(d.Options) {
			d.CorrectAnswerIndex = 0
		}
		return nil
	})
}

func (f questionFields) AddOption() error {
	return f.edit(func(d *QuestionFormData) error {
		d.Options = append(d.Options, "")
		return nil
	})
}

// RemoveOption drops the option at index. The correct answer keeps pointing at
// the same option; removing the correct option itself selects the first one.
func (f questionFields) RemoveOption(index int) error {
	return f.edit(func(d *QuestionFormData) error {
		if index < 0 || index >= len(d.Options) {
			return fmt.Errorf("option %d out of range", index)
		}
		options := make([]string, 0, len(d.Options)-1)
		options = append(options, d.Options[:index]...)
		d.Options = append(options, d.Options[index+1:]...)
		switch {
		case index < d.CorrectAnswerIndex:
			d.CorrectAnswerIndex--
		case index == d.CorrectAnswerIndex:
			d.CorrectAnswerIndex = 0
		}
		return nil
	})
}

func (f questionFields) SetCorrectAnswer(index int) error {
	return f.edit(func(d *QuestionFormData) error {
		if index < 0 || index >= len(d.Options) {
			return fmt.Errorf("option %d out of range", index)
		}
		d.CorrectAnswerIndex = index
		return nil
	})
}

// AddKeyword appends a trimmed keyword. Blank input is ignored.
func (f questionFields) AddKeyword(keyword string) error {
	return f.edit(func(d *QuestionFormData) error {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			d.Keywords = append(d.Keywords, keyword)
		}
		return nil
	})
}

// SetKeywords replaces every keyword, dropping blank entries.
func (f questionFields) SetKeywords(keywords []string) error {
	return f.edit(func(d *QuestionFormData) error {
		d.Keywords = cleanKeywords(keywords)
		return nil
	})
}

func (f questionFields) RemoveKeyword(keyword string) error {
	return f.edit(func(d *QuestionFormData) error {
		d.Keywords = removeString(d.Keywords, keyword)
		return nil
	})
}

func (f questionFields) Back() error { return f.ctrl.Navigate(QuestionsPath) }
func (f questionFields) Snapshot() Snapshot[QuestionFormData] { return f.ctrl.Snapshot() }
func (f questionFields) Close() { f.ctrl.Close() }
func (f questionFields) RedirectPending() bool { return f.ctrl.RedirectPending() }

// CreateQuestionForm creates a question.
type CreateQuestionForm struct {
	questionFields
	api QuestionAPI
}

// NewCreateQuestionForm builds a create form with blank options.
func NewCreateQuestionForm(api QuestionAPI, view View[QuestionFormData], opts Options) *CreateQuestionForm {
	ctrl := NewController("create-question", blankQuestionForm(), view, opts)
	return &CreateQuestionForm{questionFields: questionFields{ctrl: ctrl}, api: api}
}

// Submit sends the question. On success the form resets and the new question
// opens after the redirect delay.
func (f *CreateQuestionForm) Submit(ctx context.Context) error {
	return f.ctrl.Submit(ctx, Mutation[QuestionFormData]{
		Name:   "create question",
		Notice: "Question created successfully",
		Run: func(ctx context.Context, data QuestionFormData) (func(QuestionFormData) QuestionFormData, error) {
			candidate := data.fill(catalog.Question{})
			if err := candidate.Validate(); err != nil {
				return nil, err
			}
			created, err := f.api.CreateQuestion(ctx, candidate)
			if err != nil {
				return nil, err
			}
			return func(QuestionFormData) QuestionFormData {
				next := blankQuestionForm()
				next.SavedID = created.ID
				return next
			}, nil
		},
		Redirect: func(d QuestionFormData) string { return savedQuestionPath(d.SavedID) },
	})
}

// UpdateQuestionForm edits an existing question.
type UpdateQuestionForm struct {
	questionFields
	api QuestionAPI
}

// NewUpdateQuestionForm builds an update form; call Load to fill it.
func NewUpdateQuestionForm(api QuestionAPI, view View[QuestionFormData], opts Options) *UpdateQuestionForm {
	ctrl := NewController("update-question", QuestionFormData{}, view, opts)
	return &UpdateQuestionForm{questionFields: questionFields{ctrl: ctrl}, api: api}
}

// Load pre-fills the form from the stored question.
func (f *UpdateQuestionForm) Load(ctx context.Context, id string) error {
	return f.ctrl.Load(ctx, func(ctx context.Context) (func(QuestionFormData) QuestionFormData, error) {
		if id == "" {
			return nil, ErrInvalidQuestionID
		}
		question, err := f.api.GetQuestion(ctx, id)
		if err != nil {
			return nil, err
		}
		return func(QuestionFormData) QuestionFormData { return questionFormFrom(question) }, nil
	})
}

// Submit replaces the question with a copy of the loaded record carrying the
// edited fields.
func (f *UpdateQuestionForm) Submit(ctx context.Context) error {
	return f.ctrl.Submit(ctx, Mutation[QuestionFormData]{
		Name:   "update question",
		Notice: "Question updated successfully",
		Run: func(ctx context.Context, data QuestionFormData) (func(QuestionFormData) QuestionFormData, error) {
			if data.Original.ID == "" {
				return nil, ErrNotReady
			}
			base, err := cloneQuestion(data.Original)
			if err != nil {
				return nil, err
			}
			candidate := data.fill(base)
			if err := candidate.Validate(); err != nil {
				return nil, err
			}
			updated, err := f.api.UpdateQuestion(ctx, data.Original.ID, candidate)
			if err != nil {
				return nil, err
			}
			if updated.ID == "" {
				updated.ID = data.Original.ID
			}
			return func(QuestionFormData) QuestionFormData { return questionFormFrom(updated) }, nil
		},
		Redirect: func(d QuestionFormData) string { return savedQuestionPath(d.SavedID) },
	})
}

func savedQuestionPath(id string) string {
	if id == "" {
		return QuestionsPath
	}
	return QuestionPath(id)
}

func cleanKeywords(keywords []string) []string {
	cleaned := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			cleaned = append(cleaned, keyword)
		}
	}
	return cleaned
}

func removeString(values []string, target string) []string {
	kept := make([]string, 0, len(values))
	for _, value := range values {
		if value != target {
			kept = append(kept, value)
		}
	}
	return kept
}

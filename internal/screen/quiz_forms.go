package screen

import (
	"context"
	"strings"

	"quizdesk/pkg/catalog"
)

// QuizFormData holds the editable quiz fields. Original is the record the
// update form was loaded from; SavedID is the identity of the last saved quiz.
type QuizFormData struct {
	Title       string
	Description string
	Original    catalog.Quiz
	SavedID     string
}

type quizFields struct {
	ctrl *Controller[QuizFormData]
}

func (f quizFields) SetTitle(title string) error {
	return f.ctrl.Edit(func(d QuizFormData) (QuizFormData, error) {
		d.Title = title
		return d, nil
	})
}

func (f quizFields) SetDescription(description string) error {
	return f.ctrl.Edit(func(d QuizFormData) (QuizFormData, error) {
		d.Description = description
		return d, nil
	})
}

func (f quizFields) Back() error { return f.ctrl.Navigate(QuizzesPath) }
func (f quizFields) Snapshot() Snapshot[QuizFormData] { return f.ctrl.Snapshot() }
func (f quizFields) Close() { f.ctrl.Close() }

// RedirectPending reports whether the post-save navigation is still scheduled.
func (f quizFields) RedirectPending() bool { return f.ctrl.RedirectPending() }

// CreateQuizForm creates a quiz.
type CreateQuizForm struct {
	quizFields
	api QuizAPI
}

// NewCreateQuizForm builds an empty, Idle create form.
func NewCreateQuizForm(api QuizAPI, view View[QuizFormData], opts Options) *CreateQuizForm {
	return &CreateQuizForm{quizFields: quizFields{ctrl: NewController("create-quiz", QuizFormData{}, view, opts)}, api: api}
}

// Submit sends the quiz. On success the fields are cleared and the new quiz
// opens after the redirect delay.
func (f *CreateQuizForm) Submit(ctx context.Context) error {
	return f.ctrl.Submit(ctx, Mutation[QuizFormData]{
		Name:   "create quiz",
		Notice: "Quiz created successfully",
		Run: func(ctx context.Context, data QuizFormData) (func(QuizFormData) QuizFormData, error) {
			candidate := catalog.Quiz{
				Title:       strings.TrimSpace(data.Title),
				Description: strings.TrimSpace(data.Description),
			}
			if err := candidate.Validate(); err != nil {
				return nil, err
			}
			created, err := f.api.CreateQuiz(ctx, candidate)
			if err != nil {
				return nil, err
			}
			return func(QuizFormData) QuizFormData {
				return QuizFormData{SavedID: created.ID}
			}, nil
		},
		Redirect: func(d QuizFormData) string { return savedQuizPath(d.SavedID) },
	})
}

// UpdateQuizForm edits an existing quiz.
type UpdateQuizForm struct {
	quizFields
	api QuizAPI
}

// NewUpdateQuizForm builds an update form; call Load to fill it.
func NewUpdateQuizForm(api QuizAPI, view View[QuizFormData], opts Options) *UpdateQuizForm {
	return &UpdateQuizForm{quizFields: quizFields{ctrl: NewController("update-quiz", QuizFormData{}, view, opts)}, api: api}
}

// Load pre-fills the form from the stored quiz.
func (f *UpdateQuizForm) Load(ctx context.Context, id string) error {
	return f.ctrl.Load(ctx, func(ctx context.Context) (func(QuizFormData) QuizFormData, error) {
		if id == "" {
			return nil, ErrInvalidQuizID
		}
		quiz, err := f.api.GetQuiz(ctx, id)
		if err != nil {
			return nil, err
		}
		return func(QuizFormData) QuizFormData { return quizFormFrom(quiz) }, nil
	})
}

// Submit replaces the quiz with a copy of the loaded record carrying the
// edited fields. On failure the entered values stay in place.
func (f *UpdateQuizForm) Submit(ctx context.Context) error {
	return f.ctrl.Submit(ctx, Mutation[QuizFormData]{
		Name:   "update quiz",
		Notice: "Quiz updated successfully",
		Run: func(ctx context.Context, data QuizFormData) (func(QuizFormData) QuizFormData, error) {
			if data.Original.ID == "" {
				return nil, ErrNotReady
			}
			candidate, err := cloneQuiz(data.Original)
			if err != nil {
				return nil, err
			}
			candidate.Title = strings.TrimSpace(data.Title)
			candidate.Description = strings.TrimSpace(data.Description)
			if err := candidate.Validate(); err != nil {
				return nil, err
			}
			updated, err := f.api.UpdateQuiz(ctx, data.Original.ID, candidate)
			if err != nil {
				return nil, err
			}
			if updated.ID == "" {
				updated.ID = data.Original.ID
			}
			return func(QuizFormData) QuizFormData { return quizFormFrom(updated) }, nil
		},
		Redirect: func(d QuizFormData) string { return savedQuizPath(d.SavedID) },
	})
}

func quizFormFrom(quiz catalog.Quiz) QuizFormData {
	return QuizFormData{
		Title:       quiz.Title,
		Description: quiz.Description,
		Original:    quiz,
		SavedID:     quiz.ID,
	}
}

func savedQuizPath(id string) string {
	if id == "" {
		return QuizzesPath
	}
	return QuizPath(id)
}

package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quizdesk/pkg/catalog"
)

// ErrLastDraft rejects removing the only remaining draft.
var ErrLastDraft = errors.New("at least one question is required")

// AddQuestionsData holds the drafts for one quiz.
type AddQuestionsData struct {
	QuizID string
	Drafts []catalog.Question
}

func blankDraft() catalog.Question {
	return catalog.Question{Options: make([]string, BlankOptionCount), Keywords: []string{}}
}

// AddQuestionsForm uploads several new questions into a quiz at once.
type AddQuestionsForm struct {
	ctrl *Controller[AddQuestionsData]
	api  QuizAPI
}

// NewAddQuestionsForm builds the form for quizID with a single blank draft.
func NewAddQuestionsForm(api QuizAPI, quizID string, view View[AddQuestionsData], opts Options) *AddQuestionsForm {
	initial := AddQuestionsData{QuizID: quizID, Drafts: []catalog.Question{blankDraft()}}
	return &AddQuestionsForm{ctrl: NewController("add-questions", initial, view, opts), api: api}
}

// editDraft runs fn on a private copy of draft i.
func (f *AddQuestionsForm) editDraft(i int, fn func(*catalog.Question) error) error {
	return f.ctrl.Edit(func(d AddQuestionsData) (AddQuestionsData, error) {
		if i < 0 || i >= len(d.Drafts) {
			return d, fmt.Errorf("question %d out of range", i)
		}
		drafts := append([]catalog.Question(nil), d.Drafts...)
		draft := drafts[i]
		draft.Options = append([]string(nil), draft.Options...)
		draft.Keywords = append([]string(nil), draft.Keywords...)
		if err := fn(&draft); err != nil {
			return d, err
		}
		drafts[i] = draft
		d.Drafts = drafts
		return d, nil
	})
}

// AddDraft appends a blank draft.
func (f *AddQuestionsForm) AddDraft() error {
	return f.ctrl.Edit(func(d AddQuestionsData) (AddQuestionsData, error) {
		d.Drafts = append(append([]catalog.Question(nil), d.Drafts...), blankDraft())
		return d, nil
	})
}

// RemoveDraft drops draft i unless it is the last one.
func (f *AddQuestionsForm) RemoveDraft(i int) error {
	return f.ctrl.Edit(func(d AddQuestionsData) (AddQuestionsData, error) {
		if i < 0 || i >= len(d.Drafts) {
			return d, fmt.Errorf("question %d out of range", i)
		}
		if len(d.Drafts) == 1 {
			return d, ErrLastDraft
		}
		drafts := make([]catalog.Question, 0, len(d.Drafts)-1)
		drafts = append(drafts, d.Drafts[:i]...)
		d.Drafts = append(drafts, d.Drafts[i+1:]...)
		return d, nil
	})
}

// ReplaceDrafts swaps every draft for questions, typically read from a file.
func (f *AddQuestionsForm) ReplaceDrafts(questions []catalog.Question) error {
	if len(questions) == 0 {
		return ErrLastDraft
	}
	drafts := make([]catalog.Question, 0, len(questions))
	for _, question := range questions {
		question.ID = ""
		drafts = append(drafts, question)
	}
	return f.ctrl.Edit(func(d AddQuestionsData) (AddQuestionsData, error) {
		d.Drafts = drafts
		return d, nil
	})
}

func (f *AddQuestionsForm) SetDraftText(i int, text string) error {
	return f.editDraft(i, func(q *catalog.Question) error {
		q.Text = text
		return nil
	})
}

func (f *AddQuestionsForm) SetDraftOption(i, option int, value string) error {
	return f.editDraft(i, func(q *catalog.Question) error {
		if option < 0 || option >= len(q.Options) {
			return fmt.Errorf("option %d out of range", option)
		}
		q.Options[option] = value
		return nil
	})
}

// SetDraftOptions replaces every option of draft i. The correct answer is
// reset to the first option when it no longer exists.
func (f *AddQuestionsForm) SetDraftOptions(i int, options []string) error {
	return f.editDraft(i, func(q *catalog.Question) error {
		q.Options = append([]string(nil), options...)
		if q.CorrectAnswerIndex >= len(q.Options) {
			q.CorrectAnswerIndex = 0
		}
		return nil
	})
}

func (f *AddQuestionsForm) SetDraftCorrectAnswer(i, option int) error {
	return f.editDraft(i, func(q *catalog.Question) error {
		if option < 0 || option >= len(q.Options) {
			return fmt.Errorf("option %d out of range", option)
		}
		q.CorrectAnswerIndex = option
		return nil
	})
}

// AddDraftKeyword appends a trimmed keyword to draft i. Blank input is ignored.
func (f *AddQuestionsForm) AddDraftKeyword(i int, keyword string) error {
	return f.editDraft(i, func(q *catalog.Question) error {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			q.Keywords = append(q.Keywords, keyword)
		}
		return nil
	})
}

func (f *AddQuestionsForm) SetDraftKeywords(i int, keywords []string) error {
	return f.editDraft(i, func(q *catalog.Question) error {
		q.Keywords = cleanKeywords(keywords)
		return nil
	})
}

func (f *AddQuestionsForm) RemoveDraftKeyword(i int, keyword string) error {
	return f.editDraft(i, func(q *catalog.Question) error {
		q.Keywords = removeString(q.Keywords, keyword)
		return nil
	})
}

// Submit uploads every draft. On success the form resets to a single blank
// draft and the quiz opens after the redirect delay.
func (f *AddQuestionsForm) Submit(ctx context.Context) error {
	return f.ctrl.Submit(ctx, Mutation[AddQuestionsData]{
		Name:   "add questions to quiz",
		Notice: "Questions added successfully",
		Run: func(ctx context.Context, data AddQuestionsData) (func(AddQuestionsData) AddQuestionsData, error) {
			if data.QuizID == "" {
				return nil, ErrInvalidQuizID
			}
			drafts := make([]catalog.Question, 0, len(data.Drafts))
			for _, draft := range data.Drafts {
				draft.Text = strings.TrimSpace(draft.Text)
				draft.Keywords = cleanKeywords(draft.Keywords)
				drafts = append(drafts, draft)
			}
			if err := catalog.ValidateQuestions(drafts); err != nil {
				return nil, err
			}
			if _, err := f.api.AddQuestionsToQuiz(ctx, data.QuizID, drafts); err != nil {
				return nil, err
			}
			return func(d AddQuestionsData) AddQuestionsData {
				d.Drafts = []catalog.Question{blankDraft()}
				return d
			}, nil
		},
		Redirect: func(d AddQuestionsData) string { return QuizPath(d.QuizID) },
	})
}

func (f *AddQuestionsForm) Back() error {
	return f.ctrl.Navigate(QuizPath(f.ctrl.Snapshot().Data.QuizID))
}

func (f *AddQuestionsForm) Snapshot() Snapshot[AddQuestionsData] { return f.ctrl.Snapshot() }
func (f *AddQuestionsForm) RedirectPending() bool { return f.ctrl.RedirectPending() }
func (f *AddQuestionsForm) Close() { f.ctrl.Close() }

package screen

import (
	"context"

	"quizdesk/pkg/catalog"
)

// QuizListData backs the quiz list screen.
type QuizListData struct {
	Quizzes []catalog.Quiz
	Filter  string
}

// Visible returns the quizzes whose title matches the filter.
func (d QuizListData) Visible() []catalog.Quiz {
	return catalog.FilterQuizzes(d.Quizzes, d.Filter)
}

// QuizList lists every quiz.
type QuizList struct {
	ctrl *Controller[QuizListData]
	api  QuizAPI
}

// NewQuizList builds the quiz list screen.
func NewQuizList(api QuizAPI, view View[QuizListData], opts Options) *QuizList {
	return &QuizList{ctrl: NewController("quiz-list", QuizListData{}, view, opts), api: api}
}

// Load fetches the quizzes. The filter survives reloads.
func (s *QuizList) Load(ctx context.Context) error {
	return s.ctrl.Load(ctx, func(ctx context.Context) (func(QuizListData) QuizListData, error) {
		quizzes, err := s.api.ListQuizzes(ctx)
		if err != nil {
			return nil, err
		}
		return func(d QuizListData) QuizListData {
			d.Quizzes = quizzes
			return d
		}, nil
	})
}

// SetFilter narrows the visible quizzes without a round-trip.
func (s *QuizList) SetFilter(filter string) error {
	return s.ctrl.Edit(func(d QuizListData) (QuizListData, error) {
		d.Filter = filter
		return d, nil
	})
}

// Delete removes a quiz remotely, then drops it from the list.
func (s *QuizList) Delete(ctx context.Context, id string) error {
	return s.ctrl.Submit(ctx, Mutation[QuizListData]{
		Name: "delete quiz",
		Run: func(ctx context.Context, _ QuizListData) (func(QuizListData) QuizListData, error) {
			if _, err := s.api.DeleteQuiz(ctx, id); err != nil {
				return nil, err
			}
			return func(d QuizListData) QuizListData {
				d.Quizzes = catalog.WithoutQuiz(d.Quizzes, id)
				return d
			}, nil
		},
	})
}

func (s *QuizList) Open(id string) error { return s.ctrl.Navigate(QuizPath(id)) }
func (s *QuizList) Edit(id string) error { return s.ctrl.Navigate(UpdateQuizPath(id)) }
func (s *QuizList) Create() error { return s.ctrl.Navigate(CreateQuizPath) }
func (s *QuizList) Back() error { return s.ctrl.Navigate(HomePath) }

func (s *QuizList) Snapshot() Snapshot[QuizListData] { return s.ctrl.Snapshot() }
func (s *QuizList) Close() { s.ctrl.Close() }

// QuestionListData backs the question list screen.
type QuestionListData struct {
	Questions []catalog.Question
	Filter    string
}

// Visible returns the questions whose text matches the filter.
func (d QuestionListData) Visible() []catalog.Question {
	return catalog.FilterQuestions(d.Questions, d.Filter)
}

// QuestionList lists every question.
type QuestionList struct {
	ctrl *Controller[QuestionListData]
	api  QuestionAPI
}

// NewQuestionList builds the question list screen.
func NewQuestionList(api QuestionAPI, view View[QuestionListData], opts Options) *QuestionList {
	return &QuestionList{ctrl: NewController("question-list", QuestionListData{}, view, opts), api: api}
}

// Load fetches the questions. The filter survives reloads.
func (s *QuestionList) Load(ctx context.Context) error {
	return s.ctrl.Load(ctx, func(ctx context.Context) (func(QuestionListData) QuestionListData, error) {
		questions, err := s.api.ListQuestions(ctx)
		if err != nil {
			return nil, err
		}
		return func(d QuestionListData) QuestionListData {
			d.Questions = questions
			return d
		}, nil
	})
}

// SetFilter narrows the visible questions without a round-trip.
func (s *QuestionList) SetFilter(filter string) error {
	return s.ctrl.Edit(func(d QuestionListData) (QuestionListData, error) {
		d.Filter = filter
		return d, nil
	})
}

// Delete removes a question remotely, then drops it from the list.
func (s *QuestionList) Delete(ctx context.Context, id string) error {
	return s.ctrl.Submit(ctx, Mutation[QuestionListData]{
		Name: "delete question",
		Run: func(ctx context.Context, _ QuestionListData) (func(QuestionListData) QuestionListData, error) {
			if _, err := s.api.DeleteQuestion(ctx, id); err != nil {
				return nil, err
			}
			return func(d QuestionListData) QuestionListData {
				d.Questions = catalog.WithoutQuestion(d.Questions, id)
				return d
			}, nil
		},
	})
}

func (s *QuestionList) Open(id string) error { return s.ctrl.Navigate(QuestionPath(id)) }
func (s *QuestionList) Edit(id string) error { return s.ctrl.Navigate(UpdateQuestionPath(id)) }
func (s *QuestionList) Create() error { return s.ctrl.Navigate(CreateQuestionPath) }
func (s *QuestionList) Back() error { return s.ctrl.Navigate(HomePath) }

func (s *QuestionList) Snapshot() Snapshot[QuestionListData] { return s.ctrl.Snapshot() }
func (s *QuestionList) Close() { s.ctrl.Close() }

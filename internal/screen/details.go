package screen

import (
	"context"
	"errors"
	"fmt"

	"quizdesk/pkg/catalog"
)

var (
	ErrInvalidQuizID     = errors.New("invalid quiz ID")
	ErrInvalidQuestionID = errors.New("invalid question ID")
)

// QuizDetailData backs the quiz detail screen. Questions holds the quiz's
// questions with every identifier reference resolved.
type QuizDetailData struct {
	Quiz      catalog.Quiz
	Questions []catalog.Question
	Search    string
	Keyword   string
}

// Visible returns the questions whose text matches the search.
func (d QuizDetailData) Visible() []catalog.Question {
	return catalog.FilterQuestions(d.Questions, d.Search)
}

// QuizDetail shows one quiz and its questions.
type QuizDetail struct {
	ctrl *Controller[QuizDetailData]
	api  CatalogAPI
}

// NewQuizDetail builds the quiz detail screen.
func NewQuizDetail(api CatalogAPI, view View[QuizDetailData], opts Options) *QuizDetail {
	return &QuizDetail{ctrl: NewController("quiz-detail", QuizDetailData{}, view, opts), api: api}
}

// Load reads the quiz and then each referenced question.
func (s *QuizDetail) Load(ctx context.Context, id string) error {
	return s.load(ctx, id, func(ctx context.Context) (catalog.Quiz, error) {
		return s.api.GetQuiz(ctx, id)
	}, "")
}

// LoadPopulated reads the quiz with embedded questions, optionally narrowed to
// a keyword by the server.
func (s *QuizDetail) LoadPopulated(ctx context.Context, id, keyword string) error {
	return s.load(ctx, id, func(ctx context.Context) (catalog.Quiz, error) {
		return s.api.GetQuizPopulated(ctx, id, keyword)
	}, keyword)
}

func (s *QuizDetail) load(ctx context.Context, id string, read func(context.Context) (catalog.Quiz, error), keyword string) error {
	return s.ctrl.Load(ctx, func(ctx context.Context) (func(QuizDetailData) QuizDetailData, error) {
		if id == "" {
			return nil, ErrInvalidQuizID
		}
		quiz, err := read(ctx)
		if err != nil {
			return nil, err
		}
		questions, err := resolveQuestions(ctx, s.api, quiz.Questions, nil)
		if err != nil {
			return nil, err
		}
		return func(d QuizDetailData) QuizDetailData {
			d.Quiz = quiz
			d.Questions = questions
			d.Keyword = keyword
			return d
		}, nil
	})
}

// SetSearch narrows the visible questions without a round-trip.
func (s *QuizDetail) SetSearch(search string) error {
	return s.ctrl.Edit(func(d QuizDetailData) (QuizDetailData, error) {
		d.Search = search
		return d, nil
	})
}

// Delete removes the quiz and leaves for the quiz list.
func (s *QuizDetail) Delete(ctx context.Context) error {
	return s.ctrl.Submit(ctx, Mutation[QuizDetailData]{
		Name: "delete quiz",
		Run: func(ctx context.Context, data QuizDetailData) (func(QuizDetailData) QuizDetailData, error) {
			if _, err := s.api.DeleteQuiz(ctx, data.Quiz.ID); err != nil {
				return nil, err
			}
			return nil, nil
		},
		Redirect:  func(QuizDetailData) string { return QuizzesPath },
		Immediate: true,
	})
}

// AttachQuestion creates a question inside the quiz and shows it.
func (s *QuizDetail) AttachQuestion(ctx context.Context, question catalog.Question) error {
	return s.ctrl.Submit(ctx, Mutation[QuizDetailData]{
		Name:   "add question to quiz",
		Notice: "Question added successfully",
		Run: func(ctx context.Context, data QuizDetailData) (func(QuizDetailData) QuizDetailData, error) {
			if err := question.Validate(); err != nil {
				return nil, err
			}
			known := data.Questions
			result, err := s.api.AddQuestionToQuiz(ctx, data.Quiz.ID, question)
			if err != nil {
				return nil, err
			}
			if result.Question != nil {
				created := *result.Question
				return func(d QuizDetailData) QuizDetailData {
					d.Quiz.Questions = append(append([]catalog.QuestionRef(nil), d.Quiz.Questions...), catalog.RefID(created.ID))
					d.Questions = append(append([]catalog.Question(nil), d.Questions...), created)
					return d
				}, nil
			}
			quiz := *result.Quiz
			questions, err := resolveQuestions(ctx, s.api, quiz.Questions, known)
			if err != nil {
				return nil, err
			}
			return func(d QuizDetailData) QuizDetailData {
				d.Quiz = quiz
				d.Questions = questions
				return d
			}, nil
		},
	})
}

func (s *QuizDetail) Edit() error { return s.ctrl.Navigate(UpdateQuizPath(s.quizID())) }
func (s *QuizDetail) AddQuestions() error { return s.ctrl.Navigate(AddQuestionsPath(s.quizID())) }
func (s *QuizDetail) Back() error { return s.ctrl.Navigate(QuizzesPath) }

func (s *QuizDetail) Snapshot() Snapshot[QuizDetailData] { return s.ctrl.Snapshot() }
func (s *QuizDetail) Close() { s.ctrl.Close() }

func (s *QuizDetail) quizID() string { return s.ctrl.Snapshot().Data.Quiz.ID }

// resolveQuestions turns references into questions, reusing known ones and
// reading the rest one at a time. Any failed read fails the whole resolution.
func resolveQuestions(ctx context.Context, api QuestionAPI, refs []catalog.QuestionRef, known []catalog.Question) ([]catalog.Question, error) {
	byID := make(map[string]catalog.Question, len(known))
	for _, question := range known {
		byID[question.ID] = question
	}
	questions := make([]catalog.Question, 0, len(refs))
	for _, ref := range refs {
		if question, ok := ref.Question(); ok {
			questions = append(questions, question)
			continue
		}
		if ref.ID() == "" {
			continue
		}
		if question, ok := byID[ref.ID()]; ok {
			questions = append(questions, question)
			continue
		}
		question, err := api.GetQuestion(ctx, ref.ID())
		if err != nil {
			return nil, fmt.Errorf("resolve question %s: %w", ref.ID(), err)
		}
		questions = append(questions, question)
	}
	return questions, nil
}

// QuestionDetailData backs the question detail screen.
type QuestionDetailData struct {
	Question catalog.Question
}

// QuestionDetail shows one question.
type QuestionDetail struct {
	ctrl *Controller[QuestionDetailData]
	api  QuestionAPI
}

// NewQuestionDetail builds the question detail screen.
func NewQuestionDetail(api QuestionAPI, view View[QuestionDetailData], opts Options) *QuestionDetail {
	return &QuestionDetail{ctrl: NewController("question-detail", QuestionDetailData{}, view, opts), api: api}
}

// Load reads the question.
func (s *QuestionDetail) Load(ctx context.Context, id string) error {
	return s.ctrl.Load(ctx, func(ctx context.Context) (func(QuestionDetailData) QuestionDetailData, error) {
		if id == "" {
			return nil, ErrInvalidQuestionID
		}
		question, err := s.api.GetQuestion(ctx, id)
		if err != nil {
			return nil, err
		}
		return func(d QuestionDetailData) QuestionDetailData {
			d.Question = question
			return d
		}, nil
	})
}

// Delete removes the question and leaves for the question list.
func (s *QuestionDetail) Delete(ctx context.Context) error {
	return s.ctrl.Submit(ctx, Mutation[QuestionDetailData]{
		Name: "delete question",
		Run: func(ctx context.Context, data QuestionDetailData) (func(QuestionDetailData) QuestionDetailData, error) {
			if _, err := s.api.DeleteQuestion(ctx, data.Question.ID); err != nil {
				return nil, err
			}
			return nil, nil
		},
		Redirect:  func(QuestionDetailData) string { return QuestionsPath },
		Immediate: true,
	})
}

func (s *QuestionDetail) Edit() error {
	return s.ctrl.Navigate(UpdateQuestionPath(s.ctrl.Snapshot().Data.Question.ID))
}
func (s *QuestionDetail) Back() error { return s.ctrl.Navigate(QuestionsPath) }

func (s *QuestionDetail) Snapshot() Snapshot[QuestionDetailData] { return s.ctrl.Snapshot() }
func (s *QuestionDetail) Close() { s.ctrl.Close() }

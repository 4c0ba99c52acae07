package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"quizdesk/pkg/catalog"
)

// ListQuizzes fetches every quiz.
func (c *Client) ListQuizzes(ctx context.Context) ([]catalog.Quiz, error) {
	const op = "list quizzes"
	resp, err := c.call(ctx, op, http.MethodGet, "/quizzes", nil)
	if err != nil {
		return nil, err
	}
	var quizzes []catalog.Quiz
	if err := decode(op, resp, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// GetQuiz fetches one quiz. Its questions may be identifier references only.
func (c *Client) GetQuiz(ctx context.Context, id string) (catalog.Quiz, error) {
	const op = "get quiz"
	if id == "" {
		return catalog.Quiz{}, ErrMissingID
	}
	return c.quiz(ctx, op, http.MethodGet, quizPath(id), nil)
}

// GetQuizPopulated fetches a quiz with embedded questions. A non-empty keyword
// asks the server to keep only questions matching it.
func (c *Client) GetQuizPopulated(ctx context.Context, id, keyword string) (catalog.Quiz, error) {
	const op = "get populated quiz"
	if id == "" {
		return catalog.Quiz{}, ErrMissingID
	}
	path := quizPath(id) + "/populate"
	if keyword != "" {
		path += "/" + url.PathEscape(keyword)
	}
	return c.quiz(ctx, op, http.MethodGet, path, nil)
}

// CreateQuiz stores a new quiz and returns it with its server-assigned ID.
func (c *Client) CreateQuiz(ctx context.Context, quiz catalog.Quiz) (catalog.Quiz, error) {
	return c.quiz(ctx, "create quiz", http.MethodPost, "/quizzes", quizPayload(quiz))
}

// UpdateQuiz replaces the whole quiz document stored under id.
func (c *Client) UpdateQuiz(ctx context.Context, id string, quiz catalog.Quiz) (catalog.Quiz, error) {
	const op = "update quiz"
	if id == "" {
		return catalog.Quiz{}, ErrMissingID
	}
	return c.quiz(ctx, op, http.MethodPut, quizPath(id), quizPayload(quiz))
}

// DeleteQuiz removes a quiz.
func (c *Client) DeleteQuiz(ctx context.Context, id string) (Ack, error) {
	const op = "delete quiz"
	if id == "" {
		return Ack{}, ErrMissingID
	}
	resp, err := c.call(ctx, op, http.MethodDelete, quizPath(id), nil)
	if err != nil {
		return Ack{}, err
	}
	return Ack{Status: resp.status, Body: resp.body}, nil
}

// AttachResult holds whichever record the server returned for a single attach.
type AttachResult struct {
	Quiz     *catalog.Quiz
	Question *catalog.Question
}

// AddQuestionToQuiz creates a question inside a quiz.
func (c *Client) AddQuestionToQuiz(ctx context.Context, quizID string, question catalog.Question) (AttachResult, error) {
	const op = "add question to quiz"
	if quizID == "" {
		return AttachResult{}, ErrMissingID
	}
	resp, err := c.call(ctx, op, http.MethodPost, quizPath(quizID)+"/question", questionPayload(question))
	if err != nil {
		return AttachResult{}, err
	}
	var fields map[string]json.RawMessage
	if err := decode(op, resp, &fields); err != nil {
		return AttachResult{}, err
	}
	if _, ok := fields["questions"]; ok {
		var quiz catalog.Quiz
		if err := decode(op, resp, &quiz); err != nil {
			return AttachResult{}, err
		}
		return AttachResult{Quiz: &quiz}, nil
	}
	var created catalog.Question
	if err := decode(op, resp, &created); err != nil {
		return AttachResult{}, err
	}
	return AttachResult{Question: &created}, nil
}

// BulkResult is the raw outcome of a bulk question upload.
type BulkResult struct {
	Status int
	Body   []byte
}

// AddQuestionsToQuiz uploads several questions at once. Identifiers are never
// sent, and only a 201 Created status counts as success.
func (c *Client) AddQuestionsToQuiz(ctx context.Context, quizID string, questions []catalog.Question) (BulkResult, error) {
	const op = "add questions to quiz"
	if quizID == "" {
		return BulkResult{}, ErrMissingID
	}
	resp, err := c.roundTrip(ctx, op, http.MethodPost, quizPath(quizID)+"/questions", bulkPayload(questions))
	if err != nil {
		return BulkResult{}, err
	}
	if resp.status != http.StatusCreated {
		remote := newRemoteError(op, resp.status, resp.body)
		if resp.status >= 200 && resp.status < 300 {
			remote.Message = fmt.Sprintf("unexpected response status: %d", resp.status)
		}
		return BulkResult{}, remote
	}
	return BulkResult{Status: resp.status, Body: resp.body}, nil
}

func (c *Client) quiz(ctx context.Context, op, method, path string, payload any) (catalog.Quiz, error) {
	resp, err := c.call(ctx, op, method, path, payload)
	if err != nil {
		return catalog.Quiz{}, err
	}
	var quiz catalog.Quiz
	if err := decode(op, resp, &quiz); err != nil {
		return catalog.Quiz{}, err
	}
	return quiz, nil
}

func quizPath(id string) string {
	return "/quizzes/" + url.PathEscape(id)
}

package httpclient

import (
	"context"
	"net/http"
	"net/url"

	"quizdesk/pkg/catalog"
)

// ListQuestions fetches every question.
func (c *Client) ListQuestions(ctx context.Context) ([]catalog.Question, error) {
	const op = "list questions"
	resp, err := c.call(ctx, op, http.MethodGet, "/questions", nil)
	if err != nil {
		return nil, err
	}
	var questions []catalog.Question
	if err := decode(op, resp, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// GetQuestion fetches one question.
func (c *Client) GetQuestion(ctx context.Context, id string) (catalog.Question, error) {
	const op = "get question"
	if id == "" {
		return catalog.Question{}, ErrMissingID
	}
	return c.question(ctx, op, http.MethodGet, questionPath(id), nil)
}

// CreateQuestion stores a new question and returns it with its server-assigned ID.
func (c *Client) CreateQuestion(ctx context.Context, question catalog.Question) (catalog.Question, error) {
	return c.question(ctx, "create question", http.MethodPost, "/questions", questionPayload(question))
}

// UpdateQuestion replaces the whole question stored under id.
func (c *Client) UpdateQuestion(ctx context.Context, id string, question catalog.Question) (catalog.Question, error) {
	const op = "update question"
	if id == "" {
		return catalog.Question{}, ErrMissingID
	}
	return c.question(ctx, op, http.MethodPut, questionPath(id), questionPayload(question))
}

// DeleteQuestion removes a question.
func (c *Client) DeleteQuestion(ctx context.Context, id string) (Ack, error) {
	const op = "delete question"
	if id == "" {
		return Ack{}, ErrMissingID
	}
	resp, err := c.call(ctx, op, http.MethodDelete, questionPath(id), nil)
	if err != nil {
		return Ack{}, err
	}
	return Ack{Status: resp.status, Body: resp.body}, nil
}

func (c *Client) question(ctx context.Context, op, method, path string, payload any) (catalog.Question, error) {
	resp, err := c.call(ctx, op, method, path, payload)
	if err != nil {
		return catalog.Question{}, err
	}
	var question catalog.Question
	if err := decode(op, resp, &question); err != nil {
		return catalog.Question{}, err
	}
	return question, nil
}

func questionPath(id string) string {
	return "/questions/" + url.PathEscape(id)
}

package catalog

import (
	"fmt"
	"strings"
)

// Issue captures a local precondition that failed before a remote call.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	prefix string
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	if collector.prefix != "" {
		field = collector.prefix + "." + field
	}
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Validate checks the fields a form requires before a question is sent.
func (q Question) Validate() error {
	collector := &issueCollector{}
	q.collectIssues(collector)
	return collector.result()
}

func (q Question) collectIssues(collector *issueCollector) {
	if strings.TrimSpace(q.Text) == "" {
		collector.add("text", "is required")
	}
	if len(q.Options) == 0 {
		collector.add("options", "must include at least one entry")
		return
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
		collector.add("correctAnswerIndex", fmt.Sprintf("must be between 0 and %d", len(q.Options)-1))
	}
}

// Validate checks the fields a form requires before a quiz is sent.
func (q Quiz) Validate() error {
	collector := &issueCollector{}
	if strings.TrimSpace(q.Title) == "" {
		collector.add("title", "is required")
	}
	if strings.TrimSpace(q.Description) == "" {
		collector.add("description", "is required")
	}
	return collector.result()
}

// ValidateQuestions checks every question and prefixes issues with its index.
func ValidateQuestions(questions []Question) error {
	collector := &issueCollector{}
	if len(questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}
	for i, question := range questions {
		collector.prefix = fmt.Sprintf("questions[%d]", i)
		question.collectIssues(collector)
	}
	return collector.result()
}

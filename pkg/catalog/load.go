package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// QuestionFile is the on-disk document used to submit questions in bulk.
type QuestionFile struct {
	Version   int            `json:"version" yaml:"version"`
	Questions []FileQuestion `json:"questions" yaml:"questions"`
}

// FileQuestion is one question entry of a QuestionFile.
type FileQuestion struct {
	Text               string   `json:"text" yaml:"text"`
	Options            []string `json:"options" yaml:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index" yaml:"correct_answer_index"`
	Keywords           []string `json:"keywords" yaml:"keywords"`
}

// LoadQuestionFile reads a YAML or JSON question file and returns its questions.
func LoadQuestionFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}
	return ParseQuestionFile(data, filepath.Ext(path))
}

// ParseQuestionFile decodes file contents; ext selects JSON for ".json" and YAML otherwise.
func ParseQuestionFile(data []byte, ext string) ([]Question, error) {
	var (
		file QuestionFile
		err  error
	)
	if strings.EqualFold(ext, ".json") {
		file, err = parseJSONFile(data)
	} else {
		file, err = parseYAMLFile(data)
	}
	if err != nil {
		return nil, err
	}
	if file.Version == 0 {
		return nil, &ValidationError{Issues: []Issue{{Field: "version", Message: "is required"}}}
	}
	if file.Version != 1 {
		return nil, &ValidationError{Issues: []Issue{{Field: "version", Message: fmt.Sprintf("unsupported version %d", file.Version)}}}
	}
	questions := make([]Question, 0, len(file.Questions))
	for _, entry := range file.Questions {
		questions = append(questions, Question{
			Text:               strings.TrimSpace(entry.Text),
			Options:            trimAll(entry.Options),
			CorrectAnswerIndex: entry.CorrectAnswerIndex,
			Keywords:           trimAll(entry.Keywords),
		})
	}
	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func parseJSONFile(data []byte) (QuestionFile, error) {
	var file QuestionFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return QuestionFile{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return QuestionFile{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return QuestionFile{}, fmt.Errorf("parse json: %w", err)
	}
	return file, nil
}

func parseYAMLFile(data []byte) (QuestionFile, error) {
	var file QuestionFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if err == io.EOF {
			return QuestionFile{}, fmt.Errorf("parse yaml: empty document")
		}
		return QuestionFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	var extra any
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return QuestionFile{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return QuestionFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	return file, nil
}

func trimAll(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		trimmed = append(trimmed, strings.TrimSpace(value))
	}
	return trimmed
}

package httpclient

import "quizdesk/pkg/catalog"

// bulkQuestion is the bulk upload shape. It has no identifier field at all.
type bulkQuestion struct {
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Keywords           []string `json:"keywords"`
}

func bulkPayload(questions []catalog.Question) []bulkQuestion {
	payload := make([]bulkQuestion, 0, len(questions))
	for _, question := range questions {
		question = questionPayload(question)
		payload = append(payload, bulkQuestion{
			Text:               question.Text,
			Options:            question.Options,
			CorrectAnswerIndex: question.CorrectAnswerIndex,
			Keywords:           question.Keywords,
		})
	}
	return payload
}

// questionPayload sends empty arrays instead of null.
func questionPayload(question catalog.Question) catalog.Question {
	if question.Options == nil {
		question.Options = []string{}
	}
	if question.Keywords == nil {
		question.Keywords = []string{}
	}
	return question
}

func quizPayload(quiz catalog.Quiz) catalog.Quiz {
	if quiz.Questions == nil {
		quiz.Questions = []catalog.QuestionRef{}
	}
	return quiz
}

package screen

import (
	"fmt"

	"github.com/jinzhu/copier"

	"quizdesk/pkg/catalog"
)

// QuestionRef keeps its variant in unexported fields, so copier gets told to
// copy the reference slice element by element instead of walking into it.
var cloneOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{{
		SrcType: []catalog.QuestionRef{},
		DstType: []catalog.QuestionRef{},
		Fn: func(src interface{}) (interface{}, error) {
			refs, _ := src.([]catalog.QuestionRef)
			if refs == nil {
				return []catalog.QuestionRef(nil), nil
			}
			return append([]catalog.QuestionRef(nil), refs...), nil
		},
	}},
}

func cloneQuiz(quiz catalog.Quiz) (catalog.Quiz, error) {
	var out catalog.Quiz
	if err := copier.CopyWithOption(&out, &quiz, cloneOption); err != nil {
		return catalog.Quiz{}, fmt.Errorf("copy quiz: %w", err)
	}
	return out, nil
}

func cloneQuestion(question catalog.Question) (catalog.Question, error) {
	var out catalog.Question
	if err := copier.CopyWithOption(&out, &question, cloneOption); err != nil {
		return catalog.Question{}, fmt.Errorf("copy question: %w", err)
	}
	return out, nil
}

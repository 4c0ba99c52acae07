package catalog

// Question is a single multiple-choice question stored in the catalog.
// ID is assigned by the remote store and stays empty until a create succeeds.
type Question struct {
	ID                 string   `json:"_id,omitempty"`
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Keywords           []string `json:"keywords"`
}

// Quiz groups questions under a title. Questions holds references whose
// representation depends on the endpoint that produced the quiz.
type Quiz struct {
	ID          string        `json:"_id,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Questions   []QuestionRef `json:"questions"`
}

// CorrectOption returns the option text at CorrectAnswerIndex.
func (q Question) CorrectOption() (string, bool) {
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
		return "", false
	}
	return q.Options[q.CorrectAnswerIndex], true
}

// QuestionIDs returns the identifier of every reference in order.
func (q Quiz) QuestionIDs() []string {
	ids := make([]string, 0, len(q.Questions))
	for _, ref := range q.Questions {
		ids = append(ids, ref.ID())
	}
	return ids
}

// Populated reports whether every reference carries a full question.
func (q Quiz) Populated() bool {
	for _, ref := range q.Questions {
		if !ref.IsFull() {
			return false
		}
	}
	return true
}

// FullQuestions returns the embedded questions of fully populated references.
// Identifier-only references are skipped.
func (q Quiz) FullQuestions() []Question {
	questions := make([]Question, 0, len(q.Questions))
	for _, ref := range q.Questions {
		if question, ok := ref.Question(); ok {
			questions = append(questions, question)
		}
	}
	return questions
}

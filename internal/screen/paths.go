package screen

import "net/url"

// Route paths understood by every front-end.
const (
	HomePath           = "/"
	QuizzesPath        = "/quizzes"
	CreateQuizPath     = "/create-quiz"
	QuestionsPath      = "/questions"
	CreateQuestionPath = "/create-question"
)

// QuizPath is the detail screen of one quiz.
func QuizPath(id string) string { return QuizzesPath + "/" + url.PathEscape(id) }

// UpdateQuizPath is the edit form of one quiz.
func UpdateQuizPath(id string) string { return "/update-quiz/" + url.PathEscape(id) }

// AddQuestionsPath is the bulk question form of one quiz.
func AddQuestionsPath(id string) string { return QuizPath(id) + "/add-questions" }

// QuestionPath is the detail screen of one question.
func QuestionPath(id string) string { return QuestionsPath + "/" + url.PathEscape(id) }

// UpdateQuestionPath is the edit form of one question.
func UpdateQuestionPath(id string) string { return "/update-question/" + url.PathEscape(id) }

// Route is a parsed screen path.
type Route struct {
	Name string
	ID   string
}

// Route names returned by ParsePath.
const (
	RouteHome           = "home"
	RouteQuizzes        = "quizzes"
	RouteQuiz           = "quiz"
	RouteCreateQuiz     = "create-quiz"
	RouteUpdateQuiz     = "update-quiz"
	RouteAddQuestions   = "add-questions"
	RouteQuestions      = "questions"
	RouteQuestion       = "question"
	RouteCreateQuestion = "create-question"
	RouteUpdateQuestion = "update-question"
)

// ParsePath maps a path produced by the builders above back to a route.
func ParsePath(path string) (Route, bool) {
	segments, ok := splitPath(path)
	if !ok {
		return Route{}, false
	}
	switch len(segments) {
	case 0:
		return Route{Name: RouteHome}, true
	case 1:
		switch segments[0] {
		case "quizzes":
			return Route{Name: RouteQuizzes}, true
		case "questions":
			return Route{Name: RouteQuestions}, true
		case "create-quiz":
			return Route{Name: RouteCreateQuiz}, true
		case "create-question":
			return Route{Name: RouteCreateQuestion}, true
		}
	case 2:
		id := segments[1]
		switch segments[0] {
		case "quizzes":
			return Route{Name: RouteQuiz, ID: id}, true
		case "questions":
			return Route{Name: RouteQuestion, ID: id}, true
		case "update-quiz":
			return Route{Name: RouteUpdateQuiz, ID: id}, true
		case "update-question":
			return Route{Name: RouteUpdateQuestion, ID: id}, true
		}
	case 3:
		if segments[0] == "quizzes" && segments[2] == "add-questions" {
			return Route{Name: RouteAddQuestions, ID: segments[1]}, true
		}
	}
	return Route{}, false
}

func splitPath(path string) ([]string, bool) {
	if path == "" || path[0] != '/' {
		return nil, false
	}
	var segments []string
	start := 1
	for i := 1; i <= len(path); i++ {
		if i < len(path) && path[i] != '/' {
			continue
		}
		if i > start {
			segment, err := url.PathUnescape(path[start:i])
			if err != nil {
				return nil, false
			}
			segments = append(segments, segment)
		}
		start = i + 1
	}
	return segments, true
}

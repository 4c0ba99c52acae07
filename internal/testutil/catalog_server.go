package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quizdesk/pkg/catalog"
)

// RecordedRequest is a request received by the stub catalog server.
type RecordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// CatalogServerConfig wires options for StartCatalogServer.
type CatalogServerConfig struct {
	// NewID assigns identities; defaults to random UUIDs.
	NewID func() string
}

// CatalogServer is an in-memory stand-in for the remote quiz catalog API.
type CatalogServer struct {
	BaseURL string
	Close   func()

	mu        sync.Mutex
	newID     func() string
	quizzes   map[string]*storedQuiz
	quizOrder []string
	questions map[string]catalog.Question
	qOrder    []string
	requests  []RecordedRequest
	failures  map[string][]int
}

type storedQuiz struct {
	id          string
	title       string
	description string
	questionIDs []string
}

// StartCatalogServer launches the stub catalog over httptest.
func StartCatalogServer(t testing.TB, cfg CatalogServerConfig) *CatalogServer {
	t.Helper()
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	s := &CatalogServer{
		newID:     cfg.NewID,
		quizzes:   map[string]*storedQuiz{},
		questions: map[string]catalog.Question{},
		failures:  map[string][]int{},
	}
	server := httptest.NewServer(s.router())
	s.BaseURL = server.URL
	s.Close = server.Close
	t.Cleanup(server.Close)
	return s
}

// SequentialIDs returns an ID generator producing prefix1, prefix2, ...
func SequentialIDs(prefix string) func() string {
	var (
		mu   sync.Mutex
		next int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return prefix + strconv.Itoa(next)
	}
}

// FailNext makes the next request matching method and path answer with status.
func (s *CatalogServer) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.failures[key] = append(s.failures[key], status)
}

// Requests returns a copy of every recorded request.
func (s *CatalogServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request matching method and path.
func (s *CatalogServer) LastRequest(method, path string) (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		req := s.requests[i]
		if req.Method == method && req.Path == path {
			return req, true
		}
	}
	return RecordedRequest{}, false
}

// SeedQuestion stores a question directly, keeping its ID when one is set.
func (s *CatalogServer) SeedQuestion(question catalog.Question) catalog.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createQuestionLocked(question, question.ID)
}

// SeedQuiz stores a quiz directly, keeping its ID when one is set.
func (s *CatalogServer) SeedQuiz(quiz catalog.Quiz) catalog.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.createQuizLocked(quiz, quiz.ID)
	return s.quizViewLocked(stored, false, "")
}

func (s *CatalogServer) router() http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(s.record, s.injectFailures)

	r.GET("/quizzes", s.listQuizzes)
	r.POST("/quizzes", s.createQuiz)
	r.GET("/quizzes/:id", s.getQuiz)
	r.PUT("/quizzes/:id", s.updateQuiz)
	r.DELETE("/quizzes/:id", s.deleteQuiz)
	r.GET("/quizzes/:id/populate", s.populateQuiz)
	r.GET("/quizzes/:id/populate/:keyword", s.populateQuiz)
	r.POST("/quizzes/:id/question", s.attachQuestion)
	r.POST("/quizzes/:id/questions", s.attachQuestions)

	r.GET("/questions", s.listQuestions)
	r.POST("/questions", s.createQuestion)
	r.GET("/questions/:id", s.getQuestion)
	r.PUT("/questions/:id", s.updateQuestion)
	r.DELETE("/questions/:id", s.deleteQuestion)
	return r
}

func (s *CatalogServer) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{Method: c.Request.Method, Path: c.Request.URL.Path, Body: body})
	s.mu.Unlock()
	c.Next()
}

func (s *CatalogServer) injectFailures(c *gin.Context) {
	key := c.Request.Method + " " + c.Request.URL.Path
	s.mu.Lock()
	queue := s.failures[key]
	status := 0
	if len(queue) > 0 {
		status = queue[0]
		s.failures[key] = queue[1:]
	}
	s.mu.Unlock()
	if status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"message": "injected failure"})
		return
	}
	c.Next()
}

func (s *CatalogServer) listQuizzes(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quizzes := make([]catalog.Quiz, 0, len(s.quizOrder))
	for _, id := range s.quizOrder {
		quizzes = append(quizzes, s.quizViewLocked(s.quizzes[id], false, ""))
	}
	c.JSON(http.StatusOK, quizzes)
}

func (s *CatalogServer) createQuiz(c *gin.Context) {
	var quiz catalog.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.createQuizLocked(quiz, "")
	c.JSON(http.StatusCreated, s.quizViewLocked(stored, false, ""))
}

func (s *CatalogServer) getQuiz(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.quizzes[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Quiz not found"})
		return
	}
	c.JSON(http.StatusOK, s.quizViewLocked(stored, false, ""))
}

func (s *CatalogServer) populateQuiz(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.quizzes[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Quiz not found"})
		return
	}
	c.JSON(http.StatusOK, s.quizViewLocked(stored, true, c.Param("keyword")))
}

func (s *CatalogServer) updateQuiz(c *gin.Context) {
	var quiz catalog.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.quizzes[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Quiz not found"})
		return
	}
	stored.title = quiz.Title
	stored.description = quiz.Description
	stored.questionIDs = s.refIDsLocked(quiz.Questions)
	c.JSON(http.StatusOK, s.quizViewLocked(stored, false, ""))
}

func (s *CatalogServer) deleteQuiz(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Quiz not found"})
		return
	}
	delete(s.quizzes, id)
	s.quizOrder = removeID(s.quizOrder, id)
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted"})
}

func (s *CatalogServer) attachQuestion(c *gin.Context) {
	var question catalog.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.quizzes[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Quiz not found"})
		return
	}
	created := s.createQuestionLocked(question, "")
	stored.questionIDs = append(stored.questionIDs, created.ID)
	c.JSON(http.StatusCreated, s.quizViewLocked(stored, false, ""))
}

func (s *CatalogServer) attachQuestions(c *gin.Context) {
	var questions []catalog.Question
	if err := c.ShouldBindJSON(&questions); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.quizzes[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Quiz not found"})
		return
	}
	created := make([]catalog.Question, 0, len(questions))
	for _, question := range questions {
		question = s.createQuestionLocked(question, "")
		stored.questionIDs = append(stored.questionIDs, question.ID)
		created = append(created, question)
	}
	c.JSON(http.StatusCreated, created)
}

func (s *CatalogServer) listQuestions(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	questions := make([]catalog.Question, 0, len(s.qOrder))
	for _, id := range s.qOrder {
		questions = append(questions, s.questions[id])
	}
	c.JSON(http.StatusOK, questions)
}

func (s *CatalogServer) createQuestion(c *gin.Context) {
	var question catalog.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusCreated, s.createQuestionLocked(question, ""))
}

func (s *CatalogServer) getQuestion(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Question not found"})
		return
	}
	c.JSON(http.StatusOK, question)
}

func (s *CatalogServer) updateQuestion(c *gin.Context) {
	var question catalog.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Question not found"})
		return
	}
	question.ID = id
	s.questions[id] = question
	c.JSON(http.StatusOK, question)
}

func (s *CatalogServer) deleteQuestion(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Question not found"})
		return
	}
	delete(s.questions, id)
	s.qOrder = removeID(s.qOrder, id)
	for _, quiz := range s.quizzes {
		quiz.questionIDs = removeID(quiz.questionIDs, id)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

func (s *CatalogServer) createQuizLocked(quiz catalog.Quiz, id string) *storedQuiz {
	if id == "" {
		id = s.newID()
	}
	stored := &storedQuiz{
		id:          id,
		title:       quiz.Title,
		description: quiz.Description,
		questionIDs: s.refIDsLocked(quiz.Questions),
	}
	if _, exists := s.quizzes[id]; !exists {
		s.quizOrder = append(s.quizOrder, id)
	}
	s.quizzes[id] = stored
	return stored
}

func (s *CatalogServer) createQuestionLocked(question catalog.Question, id string) catalog.Question {
	if id == "" {
		id = s.newID()
	}
	question.ID = id
	if question.Options == nil {
		question.Options = []string{}
	}
	if question.Keywords == nil {
		question.Keywords = []string{}
	}
	if _, exists := s.questions[id]; !exists {
		s.qOrder = append(s.qOrder, id)
	}
	s.questions[id] = question
	return question
}

// refIDsLocked stores embedded questions that lack an ID and returns every ID in order.
func (s *CatalogServer) refIDsLocked(refs []catalog.QuestionRef) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if question, ok := ref.Question(); ok && question.ID == "" {
			ids = append(ids, s.createQuestionLocked(question, "").ID)
			continue
		}
		if ref.ID() != "" {
			ids = append(ids, ref.ID())
		}
	}
	return ids
}

func (s *CatalogServer) quizViewLocked(stored *storedQuiz, populate bool, keyword string) catalog.Quiz {
	refs := make([]catalog.QuestionRef, 0, len(stored.questionIDs))
	for _, id := range stored.questionIDs {
		if !populate {
			refs = append(refs, catalog.RefID(id))
			continue
		}
		question, ok := s.questions[id]
		if !ok {
			continue
		}
		if keyword != "" && !hasKeyword(question, keyword) {
			continue
		}
		refs = append(refs, catalog.RefFull(question))
	}
	return catalog.Quiz{
		ID:          stored.id,
		Title:       stored.title,
		Description: stored.description,
		Questions:   refs,
	}
}

func hasKeyword(question catalog.Question, keyword string) bool {
	for _, candidate := range question.Keywords {
		if strings.Contains(strings.ToLower(candidate), strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	kept := make([]string, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			kept = append(kept, candidate)
		}
	}
	return kept
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapp "github.com/14kear/polls-api/internal/app/http"
	"github.com/14kear/polls-api/internal/entity"
	"github.com/14kear/polls-api/internal/handlers"
	"github.com/14kear/polls-api/internal/lib/jwt"
	"github.com/14kear/polls-api/internal/middleware"
	"github.com/14kear/polls-api/internal/services/auth"
	"github.com/14kear/polls-api/internal/services/polls"
	"github.com/14kear/polls-api/internal/storage"
	"github.com/14kear/polls-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeStorage is an in-memory stand-in for the postgres repository.
type fakeStorage struct {
	questions map[int64]entity.Question
	choices   map[int64]entity.Choice
	answers   map[int64]entity.Answer
	users     map[int64]entity.User
	tokens    map[string]int64
	nextID    int64
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		questions: make(map[int64]entity.Question),
		choices:   make(map[int64]entity.Choice),
		answers:   make(map[int64]entity.Answer),
		users:     make(map[int64]entity.User),
		tokens:    make(map[string]int64),
	}
}

func (f *fakeStorage) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStorage) SaveQuestion(_ context.Context, text string, pubDate time.Time, createdBy *int64) (int64, error) {
	id := f.id()
	f.questions[id] = entity.Question{ID: id, QuestionText: text, PubDate: pubDate, CreatedBy: createdBy}
	return id, nil
}

func (f *fakeStorage) GetQuestionByID(_ context.Context, id int64) (entity.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return entity.Question{}, storage.ErrQuestionNotFound
	}
	return q, nil
}

func (f *fakeStorage) GetQuestions(_ context.Context) ([]entity.Question, error) {
	var out []entity.Question
	for id := int64(1); id <= f.nextID; id++ {
		if q, ok := f.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStorage) UpdateQuestion(_ context.Context, id int64, text string, pubDate time.Time) error {
	q, ok := f.questions[id]
	if !ok {
		return storage.ErrQuestionNotFound
	}
	q.QuestionText = text
	q.PubDate = pubDate
	f.questions[id] = q
	return nil
}

func (f *fakeStorage) DeleteQuestion(_ context.Context, id int64) error {
	if _, ok := f.questions[id]; !ok {
		return storage.ErrQuestionNotFound
	}
	delete(f.questions, id)
	for cid, c := range f.choices {
		if c.QuestionID == id {
			delete(f.choices, cid)
		}
	}
	return nil
}

func (f *fakeStorage) SaveChoice(_ context.Context, questionID int64, text string, votes int64) (int64, error) {
	if _, ok := f.questions[questionID]; !ok {
		return 0, storage.ErrQuestionNotFound
	}
	id := f.id()
	f.choices[id] = entity.Choice{ID: id, QuestionID: questionID, ChoiceText: text, Votes: votes}
	return id, nil
}

func (f *fakeStorage) GetChoiceByID(_ context.Context, id int64) (entity.Choice, error) {
	c, ok := f.choices[id]
	if !ok {
		return entity.Choice{}, storage.ErrChoiceNotFound
	}
	return c, nil
}

func (f *fakeStorage) GetChoices(_ context.Context) ([]entity.Choice, error) {
	var out []entity.Choice
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.choices[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStorage) GetChoicesByQuestionID(_ context.Context, questionID int64) ([]entity.Choice, error) {
	var out []entity.Choice
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.choices[id]; ok && c.QuestionID == questionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStorage) UpdateChoice(_ context.Context, id, questionID int64, text string, votes int64) error {
	if _, ok := f.questions[questionID]; !ok {
		return storage.ErrQuestionNotFound
	}
	c, ok := f.choices[id]
	if !ok {
		return storage.ErrChoiceNotFound
	}
	c.QuestionID = questionID
	c.ChoiceText = text
	c.Votes = votes
	f.choices[id] = c
	return nil
}

func (f *fakeStorage) DeleteChoice(_ context.Context, id int64) error {
	if _, ok := f.choices[id]; !ok {
		return storage.ErrChoiceNotFound
	}
	delete(f.choices, id)
	return nil
}

func (f *fakeStorage) SaveAnswer(_ context.Context, choiceID, userID int64) (int64, error) {
	c, ok := f.choices[choiceID]
	if !ok {
		return 0, storage.ErrChoiceNotFound
	}
	c.Votes++
	f.choices[choiceID] = c

	id := f.id()
	f.answers[id] = entity.Answer{ID: id, ChoiceID: choiceID, UserID: userID, CreatedAt: time.Now()}
	return id, nil
}

func (f *fakeStorage) GetAnswerByID(_ context.Context, id int64) (entity.Answer, error) {
	a, ok := f.answers[id]
	if !ok {
		return entity.Answer{}, storage.ErrAnswerNotFound
	}
	return a, nil
}

func (f *fakeStorage) GetAnswers(_ context.Context) ([]entity.Answer, error) {
	var out []entity.Answer
	for id := int64(1); id <= f.nextID; id++ {
		if a, ok := f.answers[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStorage) DeleteAnswer(_ context.Context, id int64) error {
	a, ok := f.answers[id]
	if !ok {
		return storage.ErrAnswerNotFound
	}
	if c, ok := f.choices[a.ChoiceID]; ok {
		c.Votes--
		f.choices[a.ChoiceID] = c
	}
	delete(f.answers, id)
	return nil
}

func (f *fakeStorage) GetTalliesByQuestionID(_ context.Context, questionID int64) ([]entity.ChoiceTally, error) {
	var out []entity.ChoiceTally
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.choices[id]; ok && c.QuestionID == questionID {
			out = append(out, entity.ChoiceTally{ChoiceID: c.ID, ChoiceText: c.ChoiceText, Votes: c.Votes})
		}
	}
	return out, nil
}

func (f *fakeStorage) SaveUser(_ context.Context, user entity.User) (int64, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return 0, storage.ErrUserExists
		}
	}
	id := f.id()
	user.ID = id
	user.DateJoined = time.Now()
	f.users[id] = user
	return id, nil
}

func (f *fakeStorage) UserByUsername(_ context.Context, username string) (entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return entity.User{}, storage.ErrUserNotFound
}

func (f *fakeStorage) UserByID(_ context.Context, id int64) (entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return entity.User{}, storage.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeStorage) GetUsers(_ context.Context) ([]entity.User, error) {
	var out []entity.User
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStorage) UpdateUser(_ context.Context, user entity.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return storage.ErrUserNotFound
	}
	for _, u := range f.users {
		if u.Username == user.Username && u.ID != user.ID {
			return storage.ErrUserExists
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeStorage) DeleteUser(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return storage.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStorage) IsStaff(_ context.Context, userID int64) (bool, error) {
	u, ok := f.users[userID]
	if !ok {
		return false, storage.ErrUserNotFound
	}
	return u.IsStaff, nil
}

func (f *fakeStorage) SaveToken(_ context.Context, userID int64, token string, _ time.Time) (int64, error) {
	f.tokens[token] = userID
	return f.id(), nil
}

func (f *fakeStorage) IsRefreshTokenValid(_ context.Context, userID int64, token string) (bool, error) {
	uid, ok := f.tokens[token]
	return ok && uid == userID, nil
}

func (f *fakeStorage) RevokeRefreshToken(_ context.Context, userID int64, token string) error {
	if uid, ok := f.tokens[token]; !ok || uid != userID {
		return storage.ErrTokenNotFound
	}
	delete(f.tokens, token)
	return nil
}

type testEnv struct {
	engine  *gin.Engine
	storage *fakeStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fs := newFakeStorage()
	log := utils.New("test")

	authService := auth.NewAuth(log, fs, fs, fs, "test-secret", time.Minute, time.Hour)
	pollsService := polls.NewPolls(log, fs, fs, fs, fs)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	pollsHandler := handlers.NewPollsHandler(pollsService)
	authHandler := handlers.NewAuthHandler(authService)

	app := httpapp.NewApp(0, pollsHandler, authHandler, authMiddleware.Middleware())

	return &testEnv{engine: app.Engine(), storage: fs}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) seedUser(t *testing.T, username string, staff bool) int64 {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	id, err := e.storage.SaveUser(context.Background(), entity.User{
		Username: username,
		PassHash: hash,
		IsActive: true,
		IsStaff:  staff,
	})
	require.NoError(t, err)
	return id
}

func (e *testEnv) login(t *testing.T, username string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/polls/login", "", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestQuestionCRUD(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", false)
	env.seedUser(t, "admin", true)
	aliceToken := env.login(t, "alice")
	adminToken := env.login(t, "admin")

	// create
	rec := env.do(t, http.MethodPost, "/api/polls/question", aliceToken, gin.H{
		"question_text": "What's up?",
		"pub_date":      "2026-08-01T12:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeMap(t, rec)
	assert.Equal(t, "What's up?", created["question_text"])
	questionID := int64(created["id"].(float64))

	// read back
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/polls/question/%d", questionID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "What's up?", decodeMap(t, rec)["question_text"])

	// list is a bare array
	rec = env.do(t, http.MethodGet, "/api/polls/question", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// full update
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/polls/question/%d", questionID), aliceToken, gin.H{
		"question_text": "What's new?",
		"pub_date":      "2026-08-02T12:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "What's new?", decodeMap(t, rec)["question_text"])

	// partial update keeps the other field
	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/polls/question/%d", questionID), aliceToken, gin.H{
		"question_text": "Still there?",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decodeMap(t, rec)
	assert.Equal(t, "Still there?", patched["question_text"])
	assert.Contains(t, patched["pub_date"], "2026-08-02")

	// delete requires staff
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/polls/question/%d", questionID), aliceToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission to perform this action.", decodeMap(t, rec)["detail"])

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/polls/question/%d", questionID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/polls/question/%d", questionID), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found.", decodeMap(t, rec)["detail"])
}

func TestQuestionValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", false)
	token := env.login(t, "alice")

	rec := env.do(t, http.MethodPost, "/api/polls/question", token, gin.H{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fe map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fe))
	assert.Equal(t, []string{"This field is required."}, fe["question_text"])
	assert.Equal(t, []string{"This field is required."}, fe["pub_date"])

	rec = env.do(t, http.MethodPost, "/api/polls/question", token, gin.H{
		"question_text": "",
		"pub_date":      "2026-08-01T12:00:00Z",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fe))
	assert.Equal(t, []string{"This field may not be blank."}, fe["question_text"])

	rec = env.do(t, http.MethodPost, "/api/polls/question", token, gin.H{
		"question_text": "What's up?",
		"pub_date":      "not-a-date",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fe))
	assert.Equal(t, []string{"Datetime has wrong format. Use RFC 3339 instead."}, fe["pub_date"])
}

func TestMutationsRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/polls/question", "", gin.H{
		"question_text": "What's up?",
		"pub_date":      "2026-08-01T12:00:00Z",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/polls/question", "garbage-token", gin.H{
		"question_text": "What's up?",
		"pub_date":      "2026-08-01T12:00:00Z",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChoiceForeignKeyValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", false)
	token := env.login(t, "alice")

	// unknown question id
	rec := env.do(t, http.MethodPost, "/api/polls/choice", token, gin.H{
		"choice_text": "Not much",
		"question":    999,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fe map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fe))
	assert.Equal(t, []string{"Invalid pk - object does not exist."}, fe["question"])

	// question given as a string
	rec = env.do(t, http.MethodPost, "/api/polls/choice", token, gin.H{
		"choice_text": "Not much",
		"question":    "1",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fe))
	assert.Equal(t, []string{"Incorrect type. Expected pk value, received str."}, fe["question"])

	// question null
	rec = env.do(t, http.MethodPost, "/api/polls/choice", token, gin.H{
		"choice_text": "Not much",
		"question":    nil,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fe))
	assert.Equal(t, []string{"This field may not be null."}, fe["question"])
}

func TestChoiceCRUD(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", false)
	env.seedUser(t, "admin", true)
	aliceToken := env.login(t, "alice")
	adminToken := env.login(t, "admin")

	rec := env.do(t, http.MethodPost, "/api/polls/question", aliceToken, gin.H{
		"question_text": "What's up?",
		"pub_date":      "2026-08-01T12:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	questionID := int64(decodeMap(t, rec)["id"].(float64))

	rec = env.do(t, http.MethodPost, "/api/polls/choice", aliceToken, gin.H{
		"choice_text": "Not much",
		"question":    questionID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	choice := decodeMap(t, rec)
	assert.Equal(t, "Not much", choice["choice_text"])
	assert.Equal(t, float64(0), choice["votes"])
	choiceID := int64(choice["id"].(float64))

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/polls/choice/%d", choiceID), aliceToken, gin.H{
		"choice_text": "The sky",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "The sky", decodeMap(t, rec)["choice_text"])

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/polls/choice/%d", choiceID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/polls/choice/%d", choiceID), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnswerFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", false)
	env.seedUser(t, "admin", true)
	aliceToken := env.login(t, "alice")
	adminToken := env.login(t, "admin")

	rec := env.do(t, http.MethodPost, "/api/polls/question", aliceToken, gin.H{
		"question_text": "What's up?",
		"pub_date":      "2026-08-01T12:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	questionID := int64(decodeMap(t, rec)["id"].(float64))

	rec = env.do(t, http.MethodPost, "/api/polls/choice", aliceToken, gin.H{
		"choice_text": "Not much",
		"question":    questionID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	choiceID := int64(decodeMap(t, rec)["id"].(float64))

	// vote increments the counter
	rec = env.do(t, http.MethodPost, "/api/polls/answer", aliceToken, gin.H{"choice": choiceID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	answerID := int64(decodeMap(t, rec)["id"].(float64))

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/polls/choice/%d", choiceID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeMap(t, rec)["votes"])

	// owner can read their own answer
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/polls/answer/%d", answerID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// listing all answers is staff only
	rec = env.do(t, http.MethodGet, "/api/polls/answer", aliceToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/polls/answer", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var answers []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &answers))
	require.Len(t, answers, 1)

	// retracting the vote restores the counter
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/polls/answer/%d", answerID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/polls/choice/%d", choiceID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeMap(t, rec)["votes"])

	// unknown choice id on vote
	rec = env.do(t, http.MethodPost, "/api/polls/answer", aliceToken, gin.H{"choice": 999})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fe map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fe))
	assert.Equal(t, []string{"Invalid pk - object does not exist."}, fe["choice"])
}

func TestQuestionResults(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", false)
	token := env.login(t, "alice")

	rec := env.do(t, http.MethodPost, "/api/polls/question", token, gin.H{
		"question_text": "What's up?",
		"pub_date":      time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	questionID := int64(decodeMap(t, rec)["id"].(float64))

	rec = env.do(t, http.MethodPost, "/api/polls/choice", token, gin.H{
		"choice_text": "Not much",
		"question":    questionID,
		"votes":       3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/polls/question/%d/results", questionID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	results := decodeMap(t, rec)
	assert.Equal(t, true, results["was_published_recently"])

	tallies, ok := results["results"].([]any)
	require.True(t, ok)
	require.Len(t, tallies, 1)
	tally := tallies[0].(map[string]any)
	assert.Equal(t, "Not much", tally["choice_text"])
	assert.Equal(t, float64(3), tally["votes"])
}

func TestUserEndpoints(t *testing.T) {
	env := newTestEnv(t)

	// registration is public and never exposes the password hash
	rec := env.do(t, http.MethodPost, "/api/polls/user", "", gin.H{
		"username": "alice",
		"password": "password123",
		"email":    "alice@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeMap(t, rec)
	assert.Equal(t, "alice", created["username"])
	assert.NotContains(t, rec.Body.String(), "pass_hash")
	aliceID := int64(created["id"].(float64))

	// duplicate username
	rec = env.do(t, http.MethodPost, "/api/polls/user", "", gin.H{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fe map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fe))
	assert.Equal(t, []string{"A user with that username already exists."}, fe["username"])

	// missing password
	rec = env.do(t, http.MethodPost, "/api/polls/user", "", gin.H{"username": "bob"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fe))
	assert.Equal(t, []string{"This field is required."}, fe["password"])

	env.seedUser(t, "admin", true)
	aliceToken := env.login(t, "alice")
	adminToken := env.login(t, "admin")

	// wrong password
	rec = env.do(t, http.MethodPost, "/api/polls/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// user list is staff only
	rec = env.do(t, http.MethodGet, "/api/polls/user", aliceToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/polls/user", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)

	// self update
	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/polls/user/%d", aliceID), aliceToken, gin.H{
		"first_name": "Alice",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Alice", decodeMap(t, rec)["first_name"])

	// non-staff cannot grant themselves staff
	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/polls/user/%d", aliceID), aliceToken, gin.H{
		"is_staff": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeMap(t, rec)["is_staff"])

	// delete is staff only
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/polls/user/%d", aliceID), aliceToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/polls/user/%d", aliceID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNonNumericIDGives404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/polls/question/abc", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found.", decodeMap(t, rec)["detail"])
}

func TestTokenRefreshRotation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", false)

	rec := env.do(t, http.MethodPost, "/api/polls/login", "", gin.H{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))

	rec = env.do(t, http.MethodPost, "/api/polls/refresh", "", gin.H{"refresh_token": tokens.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rotated struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rotated))
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEmpty(t, rotated.RefreshToken)

	// the rotated refresh token is accepted
	rec = env.do(t, http.MethodPost, "/api/polls/refresh", "", gin.H{"refresh_token": rotated.RefreshToken})
	assert.Equal(t, http.StatusOK, rec.Code)

	// logout revokes it
	rec = env.do(t, http.MethodPost, "/api/polls/logout", "", gin.H{"refresh_token": rotated.RefreshToken})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChoicesByQuestion(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", false)
	token := env.login(t, "alice")

	rec := env.do(t, http.MethodPost, "/api/polls/question", token, gin.H{
		"question_text": "What's up?",
		"pub_date":      "2026-08-01T12:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	questionID := int64(decodeMap(t, rec)["id"].(float64))

	for _, text := range []string{"Not much", "The sky"} {
		rec = env.do(t, http.MethodPost, "/api/polls/choice", token, gin.H{
			"choice_text": text,
			"question":    questionID,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/polls/question/%d/choices", questionID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var choices []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &choices))
	require.Len(t, choices, 2)
	assert.Equal(t, "Not much", choices[0]["choice_text"])
	assert.Equal(t, "The sky", choices[1]["choice_text"])

	// unknown question gives 404, not an empty list
	rec = env.do(t, http.MethodGet, "/api/polls/question/999/choices", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found.", decodeMap(t, rec)["detail"])
}

func TestExpiredAccessTokenAutoRotation(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.seedUser(t, "alice", false)

	user, err := env.storage.UserByID(context.Background(), aliceID)
	require.NoError(t, err)

	// born-expired access token alongside a stored, valid refresh token
	pair, err := jwt.NewTokenPair(user, "test-secret", -time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = env.storage.SaveToken(context.Background(), aliceID, pair.RefreshToken, time.Now().Add(time.Hour))
	require.NoError(t, err)

	body, err := json.Marshal(gin.H{
		"question_text": "What's up?",
		"pub_date":      "2026-08-01T12:00:00Z",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/polls/question", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	req.Header.Set("X-Refresh-Token", pair.RefreshToken)

	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-New-Access-Token"))
	assert.NotEmpty(t, rec.Header().Get("X-New-Refresh-Token"))

	// without a refresh token the expired access token is simply rejected
	req = httptest.NewRequest(http.MethodPost, "/api/polls/question", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	rec = httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAllMismatchedFieldsReported(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", false)
	token := env.login(t, "alice")

	rec := env.do(t, http.MethodPost, "/api/polls/choice", token, gin.H{
		"choice_text": 1,
		"votes":       "x",
		"question":    "1",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fe map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fe))
	assert.Equal(t, []string{"Not a valid string."}, fe["choice_text"])
	assert.Equal(t, []string{"A valid integer is required."}, fe["votes"])
	assert.Equal(t, []string{"Incorrect type. Expected pk value, received str."}, fe["question"])
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/14kear/polls-api/internal/entity"
	"github.com/14kear/polls-api/internal/services/polls"
	"github.com/14kear/polls-api/internal/storage"
	"github.com/gin-gonic/gin"
)

type PollsHandler struct {
	pollsService *polls.Polls
}

func NewPollsHandler(pollsService *polls.Polls) *PollsHandler {
	return &PollsHandler{pollsService: pollsService}
}

type questionPayload struct {
	QuestionText *string `json:"question_text"`
	PubDate      *string `json:"pub_date"`
}

type choicePayload struct {
	ChoiceText *string `json:"choice_text"`
	Votes      *int64  `json:"votes"`
	Question   *int64  `json:"question"`
}

type answerPayload struct {
	Choice *int64 `json:"choice"`
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": detailNotFound})
		return 0, false
	}
	return id, true
}

func userIDFromContext(c *gin.Context) (int64, bool) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}

	userID, ok := userIDValue.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user id in context"})
		return 0, false
	}

	return userID, true
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrQuestionNotFound),
		errors.Is(err, storage.ErrChoiceNotFound),
		errors.Is(err, storage.ErrAnswerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": detailNotFound})
	case errors.Is(err, polls.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"detail": detailForbidden})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *PollsHandler) GetQuestions(c *gin.Context) {
	questions, err := h.pollsService.GetQuestions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if questions == nil {
		questions = []entity.Question{}
	}
	c.JSON(http.StatusOK, questions)
}

func (h *PollsHandler) GetQuestionByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	question, err := h.pollsService.GetQuestionByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *PollsHandler) CreateQuestion(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var payload questionPayload
	raw, typeErr, ok := decodeBody(c, &payload)
	if !ok {
		return
	}

	fe := fieldErrors{}
	text := checkText(fe, raw, "question_text", payload.QuestionText, typeErr)
	pubDate := checkDatetime(fe, raw, "pub_date", payload.PubDate, typeErr)
	if !fe.empty() {
		c.JSON(http.StatusBadRequest, fe)
		return
	}

	id, err := h.pollsService.CreateQuestion(c.Request.Context(), text, pubDate, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	question, err := h.pollsService.GetQuestionByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

func (h *PollsHandler) UpdateQuestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload questionPayload
	raw, typeErr, ok := decodeBody(c, &payload)
	if !ok {
		return
	}

	fe := fieldErrors{}
	text := checkText(fe, raw, "question_text", payload.QuestionText, typeErr)
	pubDate := checkDatetime(fe, raw, "pub_date", payload.PubDate, typeErr)
	if !fe.empty() {
		c.JSON(http.StatusBadRequest, fe)
		return
	}

	if err := h.pollsService.UpdateQuestion(c.Request.Context(), id, text, pubDate); err != nil {
		respondServiceError(c, err)
		return
	}

	question, err := h.pollsService.GetQuestionByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// PatchQuestion updates only the fields present in the request body.
func (h *PollsHandler) PatchQuestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	current, err := h.pollsService.GetQuestionByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var payload questionPayload
	raw, typeErr, ok := decodeBody(c, &payload)
	if !ok {
		return
	}

	fe := fieldErrors{}
	text := current.QuestionText
	pubDate := current.PubDate
	if present(raw, "question_text") {
		text = checkText(fe, raw, "question_text", payload.QuestionText, typeErr)
	}
	if present(raw, "pub_date") {
		pubDate = checkDatetime(fe, raw, "pub_date", payload.PubDate, typeErr)
	}
	if !fe.empty() {
		c.JSON(http.StatusBadRequest, fe)
		return
	}

	if err := h.pollsService.UpdateQuestion(c.Request.Context(), id, text, pubDate); err != nil {
		respondServiceError(c, err)
		return
	}

	question, err := h.pollsService.GetQuestionByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *PollsHandler) DeleteQuestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	if err := h.pollsService.DeleteQuestion(c.Request.Context(), id, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetQuestionResults returns the question with its per-choice tallies.
func (h *PollsHandler) GetQuestionResults(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	question, tallies, err := h.pollsService.GetQuestionResults(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if tallies == nil {
		tallies = []entity.ChoiceTally{}
	}

	c.JSON(http.StatusOK, gin.H{
		"question":               question,
		"was_published_recently": question.WasPublishedRecently(),
		"results":                tallies,
	})
}

// GetChoicesByQuestionID lists the choices attached to one question.
func (h *PollsHandler) GetChoicesByQuestionID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	choices, err := h.pollsService.GetChoicesByQuestionID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if choices == nil {
		choices = []entity.Choice{}
	}
	c.JSON(http.StatusOK, choices)
}

func (h *PollsHandler) GetChoices(c *gin.Context) {
	choices, err := h.pollsService.GetChoices(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if choices == nil {
		choices = []entity.Choice{}
	}
	c.JSON(http.StatusOK, choices)
}

func (h *PollsHandler) GetChoiceByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	choice, err := h.pollsService.GetChoiceByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, choice)
}

func (h *PollsHandler) validateChoice(c *gin.Context, partial bool, current *entity.Choice) (text string, votes, questionID int64, ok bool) {
	var payload choicePayload
	raw, typeErr, decoded := decodeBody(c, &payload)
	if !decoded {
		return "", 0, 0, false
	}

	fe := fieldErrors{}

	if current != nil {
		text = current.ChoiceText
		votes = current.Votes
		questionID = current.QuestionID
	}

	if !partial || present(raw, "choice_text") {
		text = checkText(fe, raw, "choice_text", payload.ChoiceText, typeErr)
	}

	if present(raw, "votes") {
		if typeErr["votes"] {
			fe.add("votes", msgInteger)
		} else if payload.Votes != nil {
			votes = *payload.Votes
		}
	}

	if !partial || present(raw, "question") {
		switch {
		case !present(raw, "question"):
			fe.add("question", msgRequired)
		case isNull(raw, "question"):
			fe.add("question", msgNull)
		case typeErr["question"]:
			fe.add("question", msgPK)
		case payload.Question != nil:
			questionID = *payload.Question
		}
	}

	if !fe.empty() {
		c.JSON(http.StatusBadRequest, fe)
		return "", 0, 0, false
	}

	return text, votes, questionID, true
}

func (h *PollsHandler) CreateChoice(c *gin.Context) {
	if _, ok := userIDFromContext(c); !ok {
		return
	}

	text, votes, questionID, ok := h.validateChoice(c, false, nil)
	if !ok {
		return
	}

	id, err := h.pollsService.CreateChoice(c.Request.Context(), questionID, text, votes)
	if err != nil {
		if errors.Is(err, storage.ErrQuestionNotFound) {
			c.JSON(http.StatusBadRequest, fieldErrors{"question": {msgPKMissing}})
			return
		}
		respondServiceError(c, err)
		return
	}

	choice, err := h.pollsService.GetChoiceByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, choice)
}

func (h *PollsHandler) UpdateChoice(c *gin.Context) {
	h.updateChoice(c, false)
}

// PatchChoice updates only the fields present in the request body.
func (h *PollsHandler) PatchChoice(c *gin.Context) {
	h.updateChoice(c, true)
}

func (h *PollsHandler) updateChoice(c *gin.Context, partial bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	current, err := h.pollsService.GetChoiceByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	text, votes, questionID, ok := h.validateChoice(c, partial, &current)
	if !ok {
		return
	}

	if err := h.pollsService.UpdateChoice(c.Request.Context(), id, questionID, text, votes); err != nil {
		if errors.Is(err, storage.ErrQuestionNotFound) {
			c.JSON(http.StatusBadRequest, fieldErrors{"question": {msgPKMissing}})
			return
		}
		respondServiceError(c, err)
		return
	}

	choice, err := h.pollsService.GetChoiceByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, choice)
}

func (h *PollsHandler) DeleteChoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	if err := h.pollsService.DeleteChoice(c.Request.Context(), id, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateAnswer records the authenticated user's vote for a choice.
func (h *PollsHandler) CreateAnswer(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var payload answerPayload
	raw, typeErr, decoded := decodeBody(c, &payload)
	if !decoded {
		return
	}

	fe := fieldErrors{}
	var choiceID int64
	switch {
	case !present(raw, "choice"):
		fe.add("choice", msgRequired)
	case isNull(raw, "choice"):
		fe.add("choice", msgNull)
	case typeErr["choice"]:
		fe.add("choice", msgPK)
	case payload.Choice != nil:
		choiceID = *payload.Choice
	}
	if !fe.empty() {
		c.JSON(http.StatusBadRequest, fe)
		return
	}

	id, err := h.pollsService.SaveAnswer(c.Request.Context(), choiceID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrChoiceNotFound) {
			c.JSON(http.StatusBadRequest, fieldErrors{"choice": {msgPKMissing}})
			return
		}
		respondServiceError(c, err)
		return
	}

	answer, err := h.pollsService.GetAnswerByID(c.Request.Context(), id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, answer)
}

func (h *PollsHandler) GetAnswers(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	answers, err := h.pollsService.GetAnswers(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if answers == nil {
		answers = []entity.Answer{}
	}
	c.JSON(http.StatusOK, answers)
}

func (h *PollsHandler) GetAnswerByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	answer, err := h.pollsService.GetAnswerByID(c.Request.Context(), id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

func (h *PollsHandler) DeleteAnswer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	if err := h.pollsService.DeleteAnswer(c.Request.Context(), id, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

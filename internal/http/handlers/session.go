package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/http/response"
	"github.com/yungbote/strengthscope-backend/internal/services"
)

type SessionHandler struct {
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type answerRequest struct {
	QuestionID uuid.UUID         `json:"question_id"`
	Value      types.AnswerValue `json:"value"`
	Confidence *int              `json:"confidence"`
}

func (req *answerRequest) toInput() services.SubmitAnswerInput {
	value := req.Value
	if value.V == 0 {
		value.V = types.AnswerValueSchemaVersion
	}
	return services.SubmitAnswerInput{
		QuestionID: req.QuestionID,
		Value:      value,
		Confidence: req.Confidence,
	}
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return uuid.Nil, false
	}
	return id, true
}

func (sh *SessionHandler) CreateSession(c *gin.Context) {
	session, err := sh.sessionService.CreateSession(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": session})
}

func (sh *SessionHandler) RetakeSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := sh.sessionService.RetakeSession(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": session})
}

func (sh *SessionHandler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := sh.sessionService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": session})
}

func (sh *SessionHandler) SubmitAnswer(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := sh.sessionService.SubmitAnswer(c.Request.Context(), id, req.toInput()); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{})
}

// AutoSaveAnswer is fire-and-forget: failures are logged server-side and the
// client always gets success so drafts never interrupt the flow.
func (sh *SessionHandler) AutoSaveAnswer(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sh.sessionService.AutoSaveAnswer(c.Request.Context(), id, req.toInput())
	response.RespondOK(c, gin.H{})
}

func (sh *SessionHandler) GetNextQuestion(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	next, err := sh.sessionService.GetNextQuestion(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"question":     next.Question,
		"done":         next.Done,
		"current_step": next.CurrentStep,
		"total_steps":  next.TotalSteps,
	})
}

func (sh *SessionHandler) CompletePhase(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req struct {
		Phase int `json:"phase"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	session, err := sh.sessionService.CompletePhase(c.Request.Context(), id, req.Phase)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": session})
}

func (sh *SessionHandler) AbandonSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := sh.sessionService.AbandonSession(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{})
}

func (sh *SessionHandler) CheckStaleSessions(c *gin.Context) {
	sessions, err := sh.sessionService.CheckStaleSessions(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sessions": sessions})
}

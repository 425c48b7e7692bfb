package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/strengthscope-backend/internal/http/response"
	"github.com/yungbote/strengthscope-backend/internal/services"
)

type ResultsHandler struct {
	resultsService services.ResultsService
}

func NewResultsHandler(resultsService services.ResultsService) *ResultsHandler {
	return &ResultsHandler{resultsService: resultsService}
}

func (rh *ResultsHandler) CalculateResults(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	results, err := rh.resultsService.CalculateResults(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"results": results})
}

func (rh *ResultsHandler) GetResults(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	results, err := rh.resultsService.GetResults(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"results": results})
}

func (rh *ResultsHandler) SaveResultsToProfile(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	profile, err := rh.resultsService.SaveResultsToProfile(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": profile})
}

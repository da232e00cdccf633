package chat

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"parlor/internal/application/chat/usecases"
	"parlor/internal/infrastructure/token"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
	"parlor/internal/shared/utils"
)

type SessionHandler struct {
	startSessionUC usecases.StartSessionExecutor
	getStatusUC    usecases.GetSessionStatusExecutor
	heartbeatUC    usecases.HeartbeatExecutor
	endSessionUC   usecases.EndSessionExecutor
	converseUC     usecases.ConverseExecutor
	logger         logger.Interface
}

func NewSessionHandler(
	startSessionUC usecases.StartSessionExecutor,
	getStatusUC usecases.GetSessionStatusExecutor,
	heartbeatUC usecases.HeartbeatExecutor,
	endSessionUC usecases.EndSessionExecutor,
	converseUC usecases.ConverseExecutor,
) *SessionHandler {
	return &SessionHandler{
		startSessionUC: startSessionUC,
		getStatusUC:    getStatusUC,
		heartbeatUC:    heartbeatUC,
		endSessionUC:   endSessionUC,
		converseUC:     converseUC,
		logger:         logger.NewLogger(),
	}
}

// StartSession handles POST /api/chat/sessions
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.logger.Warnw("invalid request body for start session", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid request body"))
		return
	}

	cmd := req.ToCommand(c.Request.UserAgent(), c.Request.Referer())

	result, err := h.startSessionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, NewStartSessionResponse(result), "Session created")
}

// GetStatus handles GET /api/chat/sessions/me
func (h *SessionHandler) GetStatus(c *gin.Context) {
	token, err := sessionToken(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getStatusUC.Execute(c.Request.Context(), usecases.GetSessionStatusQuery{Token: token})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", NewSessionStatusResponse(result))
}

// Heartbeat handles POST /api/chat/sessions/me/heartbeat
func (h *SessionHandler) Heartbeat(c *gin.Context) {
	token, err := sessionToken(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.heartbeatUC.Execute(c.Request.Context(), usecases.HeartbeatCommand{Token: token})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": result.Status})
}

// EndSession handles DELETE /api/chat/sessions/me
func (h *SessionHandler) EndSession(c *gin.Context) {
	token, err := sessionToken(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.endSessionUC.Execute(c.Request.Context(), usecases.EndSessionCommand{Token: token})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Session ended", gin.H{"status": result.Status})
}

// Converse handles POST /api/chat/sessions/me/messages
func (h *SessionHandler) Converse(c *gin.Context) {
	token, err := sessionToken(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ConverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for converse", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("message is required and limited to 4000 characters"))
		return
	}

	result, err := h.converseUC.Execute(c.Request.Context(), usecases.ConverseCommand{
		Token:   token,
		Message: req.Message,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", NewConverseResponse(result))
}

// sessionToken extracts the session token from the Authorization header or,
// as a fallback for EventSource-style clients, the token query parameter.
// Values that are not even shaped like a session token are rejected here,
// before they reach the store.
func sessionToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", apperrors.NewUnauthorizedError("invalid authorization header format")
		}
		if !token.HasPrefix(parts[1]) {
			return "", apperrors.NewUnauthorizedError("invalid or expired session token")
		}
		return parts[1], nil
	}

	if value := c.Query("token"); value != "" {
		if !token.HasPrefix(value) {
			return "", apperrors.NewUnauthorizedError("invalid or expired session token")
		}
		return value, nil
	}

	return "", apperrors.NewUnauthorizedError("session token required")
}

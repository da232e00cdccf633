package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parlor/internal/domain/chat"
	apperrors "parlor/internal/shared/errors"
)

func TestGetSessionDetailUseCase_Execute(t *testing.T) {
	session := reconstructActive(t, 7, "cs_detail", time.Now().UTC().Add(10*time.Minute))

	repo := &mockSessionRepository{
		FindBySIDFunc: func(ctx context.Context, sid string) (*chat.Session, error) {
			assert.Equal(t, "cs_detail", sid)
			return session, nil
		},
	}

	uc := NewGetSessionDetailUseCase(repo, &mockLogger{})
	result, err := uc.Execute(context.Background(), GetSessionDetailQuery{SID: "cs_detail"})

	require.NoError(t, err)
	assert.Equal(t, "cs_detail", result.SessionID)
	assert.Equal(t, string(chat.StatusActive), result.Status)
	assert.Equal(t, session.ExpiresAt(), result.ExpiresAt)
}

func TestGetSessionDetailUseCase_Execute_UnknownSID(t *testing.T) {
	repo := &mockSessionRepository{
		FindBySIDFunc: func(ctx context.Context, sid string) (*chat.Session, error) {
			return nil, apperrors.NewNotFoundError("session not found")
		},
	}

	uc := NewGetSessionDetailUseCase(repo, &mockLogger{})
	_, err := uc.Execute(context.Background(), GetSessionDetailQuery{SID: "cs_bogus"})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestGetSessionDetailUseCase_Execute_EmptySID(t *testing.T) {
	uc := NewGetSessionDetailUseCase(&mockSessionRepository{}, &mockLogger{})
	_, err := uc.Execute(context.Background(), GetSessionDetailQuery{})
	require.Error(t, err)
}

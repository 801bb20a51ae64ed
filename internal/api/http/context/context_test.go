package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

func TestManager_Roundtrip(t *testing.T) {
	m := NewManager()
	user := model.SessionUser{UserID: uuid.New(), Username: "contractor01"}

	ctx := m.SetSessionToContext(context.Background(), user)

	got, ok := m.GetSessionFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, user, got)
}

func TestManager_MissingSession(t *testing.T) {
	m := NewManager()

	_, ok := m.GetSessionFromContext(context.Background())
	assert.False(t, ok)
}

package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"kindred/config"
	"kindred/internal/domain/entity"
	"kindred/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMatchUsecase struct {
	mu          sync.Mutex
	invalidated []uuid.UUID
}

func (f *fakeMatchUsecase) Score(ctx context.Context, viewerID, candidateID uuid.UUID) (*entity.Match, error) {
	return nil, nil
}

func (f *fakeMatchUsecase) Rank(ctx context.Context, viewerID uuid.UUID, input *usecase.RankInput) (*usecase.RankPage, error) {
	return nil, nil
}

func (f *fakeMatchUsecase) Dismiss(ctx context.Context, viewerID, candidateID uuid.UUID) error {
	return nil
}

func (f *fakeMatchUsecase) Invalidate(ctx context.Context, userID uuid.UUID, reason string) error {
	return nil
}

func (f *fakeMatchUsecase) ApplyInvalidation(userID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.invalidated = append(f.invalidated, userID)
}

func newTestPushHandler(t *testing.T) (*PushHandler, *fakeMatchUsecase) {
	t.Helper()

	matchUC := &fakeMatchUsecase{}
	h := NewPushHandler(PushHandlerParams{
		Config:  &config.Config{},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		MatchUC: matchUC,
	})

	return h, matchUC
}

func pushRequest(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func invalidationPush(t *testing.T, userID, reason string) string {
	t.Helper()

	payload, err := json.Marshal(map[string]string{"user_id": userID, "reason": reason})
	require.NoError(t, err)

	return fmt.Sprintf(`{"message":{"data":%q,"messageId":"m1"},"subscription":"projects/p/subscriptions/s"}`,
		base64.StdEncoding.EncodeToString(payload))
}

func TestPushHandlerHandlePush(t *testing.T) {
	t.Parallel()

	t.Run("applies invalidation and acks", func(t *testing.T) {
		t.Parallel()

		h, matchUC := newTestPushHandler(t)
		userID := uuid.New()
		c, rec := pushRequest(t, invalidationPush(t, userID.String(), "purpose_profile_updated"))

		require.NoError(t, h.HandlePush(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []uuid.UUID{userID}, matchUC.invalidated)
	})

	t.Run("malformed JSON body is a bad request", func(t *testing.T) {
		t.Parallel()

		h, matchUC := newTestPushHandler(t)
		c, rec := pushRequest(t, "{not json")

		require.NoError(t, h.HandlePush(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, matchUC.invalidated)
	})

	t.Run("bad base64 data is a bad request", func(t *testing.T) {
		t.Parallel()

		h, matchUC := newTestPushHandler(t)
		c, rec := pushRequest(t, `{"message":{"data":"!!!","messageId":"m1"}}`)

		require.NoError(t, h.HandlePush(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, matchUC.invalidated)
	})

	t.Run("invalid user ID is acknowledged without retry", func(t *testing.T) {
		t.Parallel()

		h, matchUC := newTestPushHandler(t)
		c, rec := pushRequest(t, invalidationPush(t, "not-a-uuid", ""))

		require.NoError(t, h.HandlePush(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, matchUC.invalidated)
	})
}

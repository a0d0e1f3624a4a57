package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	ikey, ok := r.keys[key+"|"+userID.String()]
	if !ok {
		return nil, nil
	}
	return ikey, nil
}

func (r *memoryIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.keys[ikey.Key+"|"+ikey.UserID.String()] = ikey
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	for k, ikey := range r.keys {
		if ikey.IsExpired() {
			delete(r.keys, k)
		}
	}
	return nil
}

type idempotencyHarness struct {
	router *gin.Engine
	repo   *memoryIdempotencyRepo
	userID uuid.UUID
	calls  map[string]int
}

func newIdempotencyHarness(required bool) *idempotencyHarness {
	gin.SetMode(gin.TestMode)

	h := &idempotencyHarness{
		repo:   newMemoryIdempotencyRepo(),
		userID: uuid.New(),
		calls:  make(map[string]int),
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", h.userID)
	})
	router.Use(Idempotency(IdempotencyConfig{Repo: h.repo, Required: required}))

	handlerFor := func(name string, status int) gin.HandlerFunc {
		return func(c *gin.Context) {
			h.calls[name]++
			c.JSON(status, gin.H{"handled": name, "call": h.calls[name]})
		}
	}
	router.POST("/settlements/open", handlerFor("open", http.StatusCreated))
	router.POST("/settlements/:id/close", handlerFor("close", http.StatusOK))
	router.POST("/settlements/failing", func(c *gin.Context) {
		h.calls["failing"]++
		c.JSON(http.StatusConflict, gin.H{"handled": "failing"})
	})
	router.GET("/settlements/today", handlerFor("today", http.StatusOK))

	h.router = router
	return h
}

func (h *idempotencyHarness) do(method, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	t.Run("retry with the same key replays the stored response", func(t *testing.T) {
		h := newIdempotencyHarness(false)

		first := h.do(http.MethodPost, "/settlements/open", "k-1")
		require.Equal(t, http.StatusCreated, first.Code)
		assert.Empty(t, first.Header().Get("X-Idempotency-Replayed"))

		second := h.do(http.MethodPost, "/settlements/open", "k-1")
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
		assert.Equal(t, first.Body.String(), second.Body.String())
		assert.Equal(t, 1, h.calls["open"])
	})

	t.Run("key reuse against another endpoint is a conflict", func(t *testing.T) {
		h := newIdempotencyHarness(false)

		first := h.do(http.MethodPost, "/settlements/open", "k-1")
		require.Equal(t, http.StatusCreated, first.Code)

		id := uuid.New().String()
		second := h.do(http.MethodPost, "/settlements/"+id+"/close", "k-1")
		assert.Equal(t, http.StatusConflict, second.Code)
		assert.Zero(t, h.calls["close"])
	})

	t.Run("failed responses are not stored", func(t *testing.T) {
		h := newIdempotencyHarness(false)

		first := h.do(http.MethodPost, "/settlements/failing", "k-1")
		require.Equal(t, http.StatusConflict, first.Code)

		second := h.do(http.MethodPost, "/settlements/failing", "k-1")
		assert.Empty(t, second.Header().Get("X-Idempotency-Replayed"))
		assert.Equal(t, 2, h.calls["failing"])
	})

	t.Run("request without a key passes through each time", func(t *testing.T) {
		h := newIdempotencyHarness(false)

		h.do(http.MethodPost, "/settlements/open", "")
		h.do(http.MethodPost, "/settlements/open", "")
		assert.Equal(t, 2, h.calls["open"])
	})

	t.Run("reads ignore idempotency keys", func(t *testing.T) {
		h := newIdempotencyHarness(false)

		h.do(http.MethodGet, "/settlements/today", "k-1")
		h.do(http.MethodGet, "/settlements/today", "k-1")
		assert.Equal(t, 2, h.calls["today"])
	})

	t.Run("required mode rejects mutations without a key", func(t *testing.T) {
		h := newIdempotencyHarness(true)

		w := h.do(http.MethodPost, "/settlements/open", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, h.calls["open"])
	})

	t.Run("expired key is processed as a fresh request", func(t *testing.T) {
		h := newIdempotencyHarness(false)

		require.NoError(t, h.repo.Create(context.Background(), &entity.IdempotencyKey{
			Key:          "k-old",
			UserID:       h.userID,
			Endpoint:     "POST /settlements/open",
			ResponseCode: http.StatusCreated,
			ResponseBody: `{"handled":"open","call":1}`,
			ExpiresAt:    time.Now().Add(-time.Minute),
		}))

		w := h.do(http.MethodPost, "/settlements/open", "k-old")
		assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
		assert.Equal(t, 1, h.calls["open"])
	})
}

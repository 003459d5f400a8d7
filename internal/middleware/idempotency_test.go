package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-peoplehub/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newIdempotencyRouter(rdb *redis.Client, handled *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Idempotency(rdb))
	r.POST("/orders", func(c *gin.Context) {
		*handled++
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	return r
}

func TestIdempotency(t *testing.T) {
	key := "abc-123"
	cacheKey := fmt.Sprintf("idemp:%s:%s:%s", "/orders", "", key)
	lockKey := cacheKey + ":lock"

	t.Run("without key passes through", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		handled := 0
		r := newIdempotencyRouter(rdb, &handled)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, handled)
	})

	t.Run("cached response replayed without handler", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).SetVal(`{"id":"pesanan-1"}`)

		handled := 0
		r := newIdempotencyRouter(rdb, &handled)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set("Idempotency-Key", key)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, handled)
		assert.Contains(t, w.Body.String(), "pesanan-1")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate rejected while lock held", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		handled := 0
		r := newIdempotencyRouter(rdb, &handled)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set("Idempotency-Key", key)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, handled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first request acquires lock and reaches handler", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)

		handled := 0
		r := newIdempotencyRouter(rdb, &handled)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set("Idempotency-Key", key)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, handled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

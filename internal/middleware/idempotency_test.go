package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"paymaster/internal/middleware"
)

func newIdempotencyRouter(rdb *redis.Client, handlerCalled *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/orders",
		func(c *gin.Context) { c.Set("user_id", "user-1") },
		middleware.Idempotency(rdb),
		func(c *gin.Context) {
			*handlerCalled = true
			c.JSON(http.StatusAccepted, gin.H{"ok": true})
		},
	)
	return r
}

func postWithKey(router *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("Idempotency-Key", key)
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	var handlerCalled bool
	router := newIdempotencyRouter(rdb, &handlerCalled)

	mock.ExpectGet("idemp:/orders:user-1:key-1").SetVal(`{"generated":3}`)

	w := postWithKey(router, "key-1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, handlerCalled)
	assert.Contains(t, w.Body.String(), `"generated":3`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_CorruptCacheEntryRerunsRequest(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	var handlerCalled bool
	router := newIdempotencyRouter(rdb, &handlerCalled)

	cacheKey := "idemp:/orders:user-1:key-2"
	mock.ExpectGet(cacheKey).SetVal(`{"generated":`)
	mock.ExpectDel(cacheKey).SetVal(1)
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

	w := postWithKey(router, "key-2")

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, handlerCalled, "a broken cache entry must not short-circuit the request")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_InFlightDuplicateIsRejected(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	var handlerCalled bool
	router := newIdempotencyRouter(rdb, &handlerCalled)

	cacheKey := "idemp:/orders:user-1:key-3"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	w := postWithKey(router, "key-3")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, handlerCalled)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_MissingKeyPassesThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	var handlerCalled bool
	router := newIdempotencyRouter(rdb, &handlerCalled)

	w := postWithKey(router, "")

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, handlerCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

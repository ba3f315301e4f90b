package resthandlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoltra/restkit/rest"
)

func TestTimeout(t *testing.T) {
	t.Run("invalid duration", func(t *testing.T) {
		_, err := Timeout(TimeoutConfig{})
		assert.ErrorIs(t, err, ErrInvalidTimeout)

		_, err = Timeout(TimeoutConfig{Duration: -time.Second})
		assert.ErrorIs(t, err, ErrInvalidTimeout)
	})

	t.Run("fast handler unaffected", func(t *testing.T) {
		h, err := Timeout(TimeoutConfig{Duration: time.Second})
		require.NoError(t, err)

		srv := newTestServer()
		srv.Use(h)
		srv.GET("/fast", func(_ *rest.Request, res *rest.Response, _ func()) {
			res.Send(http.StatusOK, nil)
		})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fast", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("expired deadline without a response yields 408", func(t *testing.T) {
		h, err := Timeout(TimeoutConfig{Duration: 5 * time.Millisecond})
		require.NoError(t, err)

		srv := newTestServer()
		srv.Use(h)
		srv.GET("/slow", func(req *rest.Request, _ *rest.Response, _ func()) {
			<-req.Context().Done()
		})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))

		assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	})

	t.Run("deadline visible to downstream handlers", func(t *testing.T) {
		h, err := Timeout(TimeoutConfig{Duration: time.Second})
		require.NoError(t, err)

		var hasDeadline bool

		srv := newTestServer()
		srv.Use(h)
		srv.GET("/x", func(req *rest.Request, res *rest.Response, _ func()) {
			_, hasDeadline = req.Context().Deadline()
			res.Send(http.StatusOK, nil)
		})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.True(t, hasDeadline)
	})
}

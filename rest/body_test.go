package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBody(t *testing.T) {
	t.Run("accumulates across chunks", func(t *testing.T) {
		payload := strings.Repeat("x", bodyChunkSize*3+17)

		body, err := readBody(strings.NewReader(payload), DefaultMaxBodyBytes)
		require.Nil(t, err)
		assert.Equal(t, payload, string(body))
	})

	t.Run("body at the cap is accepted", func(t *testing.T) {
		body, err := readBody(strings.NewReader(strings.Repeat("x", DefaultMaxBodyBytes)), DefaultMaxBodyBytes)
		require.Nil(t, err)
		assert.Len(t, body, DefaultMaxBodyBytes)
	})

	t.Run("one byte over the cap is rejected", func(t *testing.T) {
		_, err := readBody(strings.NewReader(strings.Repeat("x", DefaultMaxBodyBytes+1)), DefaultMaxBodyBytes)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusRequestEntityTooLarge, err.HTTPCode)
		assert.Equal(t, CodeRequestTooLarge, err.RestCode)
	})

	t.Run("cap enforced before the stream ends", func(t *testing.T) {
		// The reader never returns EOF; only incremental enforcement
		// can terminate the read.
		_, err := readBody(endlessReader{}, DefaultMaxBodyBytes)
		require.NotNil(t, err)
		assert.Equal(t, CodeRequestTooLarge, err.RestCode)
	})
}

// endlessReader yields data forever.
type endlessReader struct{}

func (endlessReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'x'
	}
	return len(p), nil
}

func postBody(t *testing.T, cfg Config, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	srv := newTestServer(cfg)
	srv.POST("/submit", echoParams)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(HeaderContentType, contentType)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestParseBodyJSON(t *testing.T) {
	t.Run("object keys merge into params", func(t *testing.T) {
		rec := postBody(t, Config{}, ContentTypeJSON, `{"name":"ada","age":36}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"name":"ada","age":"36"}`, rec.Body.String())
	})

	t.Run("non-string values re-encode as compact JSON", func(t *testing.T) {
		rec := postBody(t, Config{}, ContentTypeJSON, `{"tags":["a","b"],"ok":true}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"tags":"[\"a\",\"b\"]","ok":"true"}`, rec.Body.String())
	})

	t.Run("malformed JSON carries the parser message", func(t *testing.T) {
		rec := postBody(t, Config{}, ContentTypeJSON, `{"a":}`)

		assert.Equal(t, http.StatusConflict, rec.Code)

		e := decodeError(t, rec)
		assert.Equal(t, CodeInvalidArgument, e.RestCode)
		assert.Contains(t, e.Message, "invalid character")
	})

	t.Run("array body parses but merges nothing", func(t *testing.T) {
		rec := postBody(t, Config{}, ContentTypeJSON, `[1,2,3]`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{}`, rec.Body.String())
	})

	t.Run("empty body with JSON content type is fine", func(t *testing.T) {
		rec := postBody(t, Config{}, ContentTypeJSON, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestParseBodyForm(t *testing.T) {
	t.Run("form keys merge into params", func(t *testing.T) {
		rec := postBody(t, Config{}, ContentTypeForm, "name=ada&city=london")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"name":"ada","city":"london"}`, rec.Body.String())
	})

	t.Run("repeated form key is a duplicate parameter", func(t *testing.T) {
		rec := postBody(t, Config{}, ContentTypeForm, "a=1&a=2")

		assert.Equal(t, http.StatusConflict, rec.Code)

		e := decodeError(t, rec)
		assert.Contains(t, e.Message, "duplicate parameter detected")
	})
}

func TestParseBodyContentTypes(t *testing.T) {
	t.Run("unknown content type with body is rejected", func(t *testing.T) {
		rec := postBody(t, Config{}, "text/plain", "hello")
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("unknown content type with empty body passes", func(t *testing.T) {
		rec := postBody(t, Config{}, "text/plain", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("absent content type with body passes unparsed", func(t *testing.T) {
		srv := newTestServer(Config{})
		srv.POST("/submit", func(req *Request, res *Response, _ func()) {
			res.Send(http.StatusOK, map[string]any{
				"body":   string(req.Body),
				"params": req.Params,
			})
		})

		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("raw bytes"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"body":"raw bytes","params":{}}`, rec.Body.String())
	})
}

func TestParseBodyContentLength(t *testing.T) {
	t.Run("mismatch is rejected", func(t *testing.T) {
		srv := newTestServer(Config{})
		srv.POST("/submit", echoParams)

		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("123456789"))
		req.ContentLength = 10

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)

		e := decodeError(t, rec)
		assert.Equal(t, CodeInvalidHeader, e.RestCode)
	})

	t.Run("unknown length is not checked", func(t *testing.T) {
		srv := newTestServer(Config{})
		srv.POST("/submit", echoParams)

		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("123456789"))
		req.ContentLength = -1

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestParseBodyDuplicateAcrossSources(t *testing.T) {
	t.Run("query and JSON body sharing a key", func(t *testing.T) {
		srv := newTestServer(Config{})
		srv.POST("/submit", echoParams)

		req := httptest.NewRequest(http.MethodPost, "/submit?name=query", strings.NewReader(`{"name":"body"}`))
		req.Header.Set(HeaderContentType, ContentTypeJSON)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)

		e := decodeError(t, rec)
		assert.Equal(t, CodeInvalidArgument, e.RestCode)
		assert.Contains(t, e.Message, "duplicate parameter detected")
	})

	t.Run("path capture and form body sharing a key", func(t *testing.T) {
		srv := newTestServer(Config{})
		srv.POST("/users/:id", echoParams)

		req := httptest.NewRequest(http.MethodPost, "/users/7", strings.NewReader("id=8"))
		req.Header.Set(HeaderContentType, ContentTypeForm)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)

		e := decodeError(t, rec)
		assert.Contains(t, e.Message, "duplicate parameter detected")
	})
}

func TestParseBodySizeLimitThroughDispatch(t *testing.T) {
	t.Run("exactly the cap is accepted", func(t *testing.T) {
		rec := postBody(t, Config{}, "", strings.Repeat("x", DefaultMaxBodyBytes))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("one byte over the cap is 413", func(t *testing.T) {
		rec := postBody(t, Config{}, "", strings.Repeat("x", DefaultMaxBodyBytes+1))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

		e := decodeError(t, rec)
		assert.Equal(t, CodeRequestTooLarge, e.RestCode)
	})

	t.Run("custom cap", func(t *testing.T) {
		rec := postBody(t, Config{MaxBodyBytes: 4}, "", "12345")
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Request is the per-request context handed to every handler. It is
// created when the request arrives, owned exclusively by that request's
// handler chain, and never shared across requests.
type Request struct {
	// ID is the request identifier, produced by Config.GenerateID.
	ID string

	// Method is the HTTP request method.
	Method string

	// RawPath is the path exactly as received.
	RawPath string

	// Path is the sanitized path the route was matched against.
	Path string

	// URL is the parsed request URL.
	URL *url.URL

	// Header holds the request headers.
	Header http.Header

	// Params holds the merged request parameters from path captures,
	// the query string, and the decoded body. Keys are unique across
	// all three sources; a collision rejects the request rather than
	// overwriting.
	Params map[string]string

	// Body is the accumulated raw request body.
	Body []byte

	// ContentType is the declared request media type, without
	// parameters. Empty when the client sent no Content-Type header.
	ContentType string

	// Accepted is the negotiated response content type.
	Accepted string

	// Version is the API version in effect for this request.
	Version string

	// Start is the time the request entered the dispatch core.
	Start time.Time

	ctx context.Context
}

// Context returns the request's context. The request ID is retrievable
// from it via restlog.RequestID.
func (r *Request) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// WithContext replaces the request's context. Handlers that attach
// deadlines or values use this before calling next.
func (r *Request) WithContext(ctx context.Context) {
	r.ctx = ctx
}

// Param returns the named request parameter, or the empty string when it
// is not set.
func (r *Request) Param(name string) string {
	return r.Params[name]
}

// setParam merges one parameter, refusing to overwrite an existing key.
func (r *Request) setParam(key, value string) error {
	if _, exists := r.Params[key]; exists {
		return fmt.Errorf("parameter %q already set", key)
	}
	r.Params[key] = value
	return nil
}

// Response is the write side of one in-flight request, paired 1:1 with a
// Request. It carries the negotiated content type and server identity so
// that payloads and errors serialize consistently with what was
// negotiated.
type Response struct {
	w http.ResponseWriter

	accepted   string
	version    string
	serverName string
	requestID  string
	start      time.Time

	status int
	wrote  bool
}

// Header returns the response header map. Mutations are only effective
// before the first Send or SendError.
func (r *Response) Header() http.Header {
	return r.w.Header()
}

// Status returns the status code written to the response, or zero when
// nothing has been written yet.
func (r *Response) Status() int {
	return r.status
}

// Written reports whether a response has been sent.
func (r *Response) Written() bool {
	return r.wrote
}

// Send serializes body in the negotiated content type (JSON) and writes
// it with the given status code. A nil body writes headers only. Send is
// a no-op if a response was already written. Serialization failures
// degrade to a plain 500.
func (r *Response) Send(code int, body any) {
	if r.wrote {
		return
	}

	if body == nil {
		r.writeHeader(code)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		r.Header().Del(HeaderContentType)
		r.writeHeader(http.StatusInternalServerError)
		fmt.Fprintln(r.w, http.StatusText(http.StatusInternalServerError))
		return
	}

	r.Header().Set(HeaderContentType, r.accepted)
	r.writeHeader(code)
	r.w.Write(buf.Bytes())
}

// SendError writes err as a structured error body. A *rest.Error is
// serialized as-is; any other error degrades to a generic 500 with no
// detail on the wire.
func (r *Response) SendError(err error) {
	var restErr *Error
	if !errors.As(err, &restErr) {
		restErr = internalError("internal error")
	}
	r.Send(restErr.HTTPCode, restErr)
}

// writeHeader stamps the identification headers and commits the status
// code. Called exactly once per response.
func (r *Response) writeHeader(code int) {
	h := r.Header()
	h.Set(HeaderRequestID, r.requestID)
	h.Set(HeaderServer, r.serverName)
	h.Set(HeaderAPIVersion, r.version)
	h.Set(HeaderResponseTime, strconv.FormatInt(time.Since(r.start).Milliseconds(), 10))

	r.status = code
	r.wrote = true
	r.w.WriteHeader(code)
}

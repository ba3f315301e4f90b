package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// bodyChunkSize is the read granularity for body accumulation. The cap
// is checked after every chunk, so an oversized body is rejected at most
// one chunk past the limit rather than after full receipt.
const bodyChunkSize = 512

// readBody accumulates the request body incrementally, enforcing the
// size cap as bytes arrive.
func readBody(r io.Reader, max int64) ([]byte, *Error) {
	var (
		body  []byte
		total int64
		chunk [bodyChunkSize]byte
	)

	for {
		n, err := r.Read(chunk[:])
		if n > 0 {
			total += int64(n)
			if total > max {
				return nil, requestTooLarge("request body exceeds %d bytes", max)
			}
			body = append(body, chunk[:n]...)
		}
		if err == io.EOF {
			return body, nil
		}
		if err != nil {
			return nil, invalidArgument("failed to read request body: %v", err)
		}
	}
}

// parseBody runs the body stages of the pipeline: accumulate with the
// size cap, verify Content-Length against what actually arrived, then
// decode form-encoded or JSON bodies into request parameters.
func (s *Server) parseBody(req *Request, httpReq *http.Request) *Error {
	var body []byte
	if httpReq.Body != nil {
		var err *Error
		body, err = readBody(httpReq.Body, s.config.MaxBodyBytes)
		if err != nil {
			return err
		}
	}
	req.Body = body

	// A negative ContentLength means the header was absent (or the
	// transfer was chunked); nothing to verify then.
	if httpReq.ContentLength >= 0 && httpReq.ContentLength != int64(len(body)) {
		return invalidHeader("Content-Length %d does not match body length %d",
			httpReq.ContentLength, len(body))
	}

	switch req.ContentType {
	case ContentTypeForm:
		values, perr := url.ParseQuery(string(body))
		if perr != nil {
			return invalidArgument("malformed form body: %v", perr)
		}
		for key, vals := range values {
			if len(vals) > 1 {
				return invalidArgument("duplicate parameter detected: %q", key)
			}
			if merr := req.setParam(key, vals[0]); merr != nil {
				return invalidArgument("duplicate parameter detected: %q", key)
			}
		}

	case ContentTypeJSON:
		if len(body) == 0 {
			return nil
		}
		var decoded any
		if perr := json.Unmarshal(body, &decoded); perr != nil {
			return invalidArgument("invalid JSON body: %v", perr)
		}
		obj, ok := decoded.(map[string]any)
		if !ok {
			// Arrays and scalars decode fine but carry no keys to
			// merge; the raw bytes stay available on the request.
			return nil
		}
		for key, val := range obj {
			if merr := req.setParam(key, paramValue(val)); merr != nil {
				return invalidArgument("duplicate parameter detected: %q", key)
			}
		}

	case "":
		// No declared content type: the body is accepted unparsed.

	default:
		if len(body) > 0 {
			return unsupportedMediaType("content type %q not supported", req.ContentType)
		}
	}

	return nil
}

// paramValue flattens a decoded JSON value into the string parameter
// space. Strings merge as-is; everything else is re-encoded as compact
// JSON.
func paramValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, _ := json.Marshal(v)
	return string(b)
}

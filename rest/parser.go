package rest

import (
	"net/http"
	"net/url"
	"strings"
)

// negotiate selects the response content type from the Accept header.
// Only JSON is served: the media range must name */*, application/* or
// application/json; any other subtype is rejected rather than silently
// defaulted. An absent header negotiates JSON.
func negotiate(accept string) (string, *Error) {
	if accept == "" {
		return ContentTypeJSON, nil
	}

	mediaRange := strings.TrimSpace(strings.Split(accept, ";")[0])
	parts := strings.Split(mediaRange, "/")
	if len(parts) != 2 {
		return "", invalidArgument("malformed Accept header %q", accept)
	}

	typ, subtype := parts[0], parts[1]
	if typ != "*" && typ != "application" {
		return "", unsupportedMediaType("media type %q not supported", mediaRange)
	}
	if subtype != "json" && subtype != "*" {
		return "", unsupportedMediaType("media type %q not supported", mediaRange)
	}

	return ContentTypeJSON, nil
}

// declaredContentType returns the request media type without parameters,
// lowercased per RFC 9110 Section 8.3.1.
func declaredContentType(header string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(header, ";")[0]))
}

// parseRequest runs the parser pipeline on a matched request. Each stage
// can short-circuit the request with a structured error. Stages run in a
// fixed order: content negotiation, early content-type rejection, API
// version check, query-string merge, then body accumulation and decoding.
func (s *Server) parseRequest(req *Request, httpReq *http.Request) *Error {
	accepted, err := negotiate(httpReq.Header.Get(HeaderAccept))
	if err != nil {
		return err
	}
	req.Accepted = accepted

	// Multipart uploads are rejected outright, before the body stream
	// is consumed.
	req.ContentType = declaredContentType(httpReq.Header.Get(HeaderContentType))
	if req.ContentType == ContentTypeMultipart {
		return unsupportedMediaType("multipart/form-data is not supported")
	}

	// The version header must equal the configured version exactly, and
	// is validated whenever the server demands it or the client sent it.
	if v := httpReq.Header.Get(HeaderAPIVersion); s.config.RequireVersion || v != "" {
		if v != s.config.Version {
			return invalidArgument("unsupported API version %q (server speaks %q)", v, s.config.Version)
		}
	}
	req.Version = s.config.Version

	// Query-string merge. Params holds only the path captures at this
	// point and capture names are unique per pattern, so a collision
	// here breaches an internal invariant rather than reporting bad
	// client input.
	if rawQuery := httpReq.URL.RawQuery; rawQuery != "" {
		values, perr := url.ParseQuery(rawQuery)
		if perr != nil {
			return invalidArgument("malformed query string: %v", perr)
		}
		for key, vals := range values {
			if len(vals) > 1 {
				return invalidArgument("duplicate parameter detected: %q", key)
			}
			if merr := req.setParam(key, vals[0]); merr != nil {
				s.logger.Error("query parameter collided with a path capture",
					"requestId", req.ID, "key", key)
				return internalError("internal error")
			}
		}
	}

	return s.parseBody(req, httpReq)
}

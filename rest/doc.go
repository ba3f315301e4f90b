// Package rest implements the request-dispatch core of a minimal HTTP API
// server: path normalization, route matching with named path parameters,
// 404/405 disambiguation, request parsing with JSON content negotiation,
// and an ordered handler chain driven by explicit continuations.
//
// # Server
//
// Create a server, register routes, and serve:
//
//	srv := rest.NewServer(rest.Config{})
//	srv.GET("/users/:id", func(req *rest.Request, res *rest.Response, next func()) {
//	    res.Send(http.StatusOK, map[string]string{"id": req.Param("id")})
//	})
//	http.ListenAndServe(":8080", srv)
//
// # Route Patterns
//
// Patterns are sequences of /-delimited segments. A segment beginning with
// a colon captures the corresponding (URL-decoded) request path segment
// under that name:
//
//	srv.GET("/users/:id/posts/:postId", handler)
//
// Patterns are compiled into a typed segment list at registration time.
// Routes are matched in registration order; the first route that matches
// wins. A request whose path matches a route registered under a different
// method receives 405 Method Not Allowed (RFC 9110 Section 15.5.6) with an
// Allow header; a path matching no route under any method receives 404
// Not Found (RFC 9110 Section 15.5.5).
//
// # Handler Chains
//
// Handlers receive the request, the response, and a continuation. A handler
// passes control to the next handler in the chain by calling the
// continuation; returning without calling it ends the request:
//
//	func auth(req *rest.Request, res *rest.Response, next func()) {
//	    if !authorized(req) {
//	        res.SendError(rest.NewError(http.StatusForbidden, rest.CodeInvalidCredentials, "go away"))
//	        return
//	    }
//	    next()
//	}
//
// Handlers registered via Use run before every matched route's own chain.
//
// # Request Parsing
//
// Before the handler chain runs, the parser pipeline negotiates the
// response content type from the Accept header (JSON only; RFC 9110
// Section 12.5.1), validates the API version header when configured or
// supplied, merges query-string parameters, and reads the request body
// with an incrementally enforced size cap. Form-encoded and JSON bodies
// are decoded into request parameters. A parameter key arriving from more
// than one source is a 409 error, never a silent overwrite.
//
// # Errors
//
// All parser and routing failures are serialized as a JSON body of the
// shape {"httpCode": ..., "restCode": ..., "message": ...}. The same
// shape is available to handlers via Response.SendError.
package rest

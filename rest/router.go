package rest

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/avoltra/restkit/restlog"
)

// Server owns the route table and drives the dispatch pipeline: sanitize
// the path, select a route, parse the request, run the handler chain.
// It implements http.Handler, so it can be served directly:
//
//	srv := rest.NewServer(rest.Config{})
//	srv.GET("/ping", pingHandler)
//	http.ListenAndServe(":8080", srv)
//
// The route table is built at configuration time and read-only while
// serving; concurrent request goroutines share it without locking.
// Registration methods must not be called once the server is serving.
type Server struct {
	config Config
	logger *slog.Logger

	// routes holds each method's routes in registration order. Order is
	// significant: the first route that matches a path wins.
	routes map[string][]*Route

	// urls indexes every registered route regardless of method. It is
	// consulted only by the 404/405 disambiguation scan.
	urls map[string]*Route

	// pre runs before every matched route's own chain.
	pre []Handler
}

// NewServer returns a Server with the given configuration. Zero-value
// config fields take their documented defaults.
func NewServer(cfg Config) *Server {
	cfg = cfg.withDefaults()
	return &Server{
		config: cfg,
		logger: cfg.Logger,
		routes: make(map[string][]*Route),
		urls:   make(map[string]*Route),
	}
}

// Use appends handlers that run before every matched route's chain, in
// the order they were added. Parser errors and routing failures bypass
// them: they only see requests that made it through the pipeline.
func (s *Server) Use(handlers ...Handler) {
	s.pre = append(s.pre, handlers...)
}

// Handle registers a handler chain under a method and URL pattern. The
// pattern is sanitized and compiled into its typed segment list once,
// here. Handle panics on a malformed pattern or an empty handler chain;
// both are configuration-time programmer errors.
func (s *Server) Handle(method, pattern string, handlers ...Handler) *Route {
	if pattern == "" {
		panic("rest: empty route pattern")
	}
	if len(handlers) == 0 {
		panic("rest: route " + pattern + " registered without handlers")
	}

	pattern = sanitizePath(pattern)
	segments, err := compilePattern(pattern)
	if err != nil {
		panic(err)
	}

	route := &Route{
		method:   strings.ToUpper(method),
		pattern:  pattern,
		segments: segments,
		handlers: handlers,
	}

	s.routes[route.method] = append(s.routes[route.method], route)
	s.urls[route.method+" "+route.pattern] = route
	return route
}

// GET registers a handler chain for GET requests.
func (s *Server) GET(pattern string, handlers ...Handler) *Route {
	return s.Handle(http.MethodGet, pattern, handlers...)
}

// HEAD registers a handler chain for HEAD requests.
func (s *Server) HEAD(pattern string, handlers ...Handler) *Route {
	return s.Handle(http.MethodHead, pattern, handlers...)
}

// POST registers a handler chain for POST requests.
func (s *Server) POST(pattern string, handlers ...Handler) *Route {
	return s.Handle(http.MethodPost, pattern, handlers...)
}

// PUT registers a handler chain for PUT requests.
func (s *Server) PUT(pattern string, handlers ...Handler) *Route {
	return s.Handle(http.MethodPut, pattern, handlers...)
}

// PATCH registers a handler chain for PATCH requests.
func (s *Server) PATCH(pattern string, handlers ...Handler) *Route {
	return s.Handle(http.MethodPatch, pattern, handlers...)
}

// DELETE registers a handler chain for DELETE requests.
func (s *Server) DELETE(pattern string, handlers ...Handler) *Route {
	return s.Handle(http.MethodDelete, pattern, handlers...)
}

// match scans the request method's route list in registration order and
// returns the first route matching the sanitized path, along with its
// extracted parameters.
func (s *Server) match(method, path string) (*Route, map[string]string) {
	for _, route := range s.routes[method] {
		if params, ok := route.match(path); ok {
			return route, params
		}
	}
	return nil, nil
}

// allowedMethods decides between 404 and 405: if the path matches a
// route registered under any other method, the request method is the
// problem, not the path. The scan deliberately covers the entire urls
// index; route tables are small and built once, so the O(total routes)
// cost is not a hot-path concern.
func (s *Server) allowedMethods(path string) []string {
	seen := make(map[string]struct{})
	for _, route := range s.urls {
		if _, ok := route.match(path); ok {
			seen[route.method] = struct{}{}
		}
	}

	methods := make([]string, 0, len(seen))
	for m := range seen {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

// ServeHTTP dispatches one request through the pipeline. Every request
// gets its own fault boundary: a panic escaping a handler is logged and,
// when no response has been written yet, answered with a generic 500 so
// the connection is never left hanging.
func (s *Server) ServeHTTP(w http.ResponseWriter, httpReq *http.Request) {
	start := time.Now()
	id := s.config.GenerateID()
	ctx := restlog.WithRequestID(httpReq.Context(), id)

	res := &Response{
		w:          w,
		accepted:   ContentTypeJSON,
		version:    s.config.Version,
		serverName: s.config.ServerName,
		requestID:  id,
		start:      start,
	}

	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("unhandled fault in request handler",
				"requestId", id, "method", httpReq.Method, "path", httpReq.URL.Path, "fault", rec)
			if !res.Written() {
				res.SendError(internalError("internal error"))
			}
		}
	}()

	path := sanitizePath(httpReq.URL.Path)

	route, params := s.match(httpReq.Method, path)
	if route == nil {
		if allowed := s.allowedMethods(path); len(allowed) > 0 {
			// RFC 9110 Section 15.5.6: a 405 response must name the
			// methods the target resource supports.
			res.Header().Set(HeaderAllow, strings.Join(allowed, ", "))
			res.SendError(methodNotAllowed("%s is not allowed for %s", httpReq.Method, path))
		} else {
			res.SendError(notFound("%s does not exist", path))
		}
		return
	}

	req := &Request{
		ID:      id,
		Method:  httpReq.Method,
		RawPath: httpReq.URL.Path,
		Path:    path,
		URL:     httpReq.URL,
		Header:  httpReq.Header,
		Params:  params,
		Start:   start,
		ctx:     ctx,
	}

	if err := s.parseRequest(req, httpReq); err != nil {
		res.SendError(err)
		return
	}
	res.accepted = req.Accepted

	if s.logger.Enabled(ctx, restlog.LevelTrace) {
		s.logger.Log(ctx, restlog.LevelTrace, "route matched",
			"method", route.method, "pattern", route.pattern, "params", req.Params)
	}

	handlers := make([]Handler, 0, len(s.pre)+len(route.handlers))
	handlers = append(handlers, s.pre...)
	handlers = append(handlers, route.handlers...)
	newChain(handlers, req, res).run()
}

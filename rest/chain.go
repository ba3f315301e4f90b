package rest

// Handler is one link in a route's handler chain. A handler passes
// control to the following handler by calling next; returning without
// calling it ends the request. Handlers that hand work to another
// goroutine must call next (or write the response) only after that work
// completes, so that no two handlers of one request run concurrently.
type Handler func(req *Request, res *Response, next func())

// chain drives a handler list with an explicit cursor. The cursor is
// private per request; calling the continuation advances it by exactly
// one handler.
type chain struct {
	handlers []Handler
	pos      int
	req      *Request
	res      *Response
}

func newChain(handlers []Handler, req *Request, res *Response) *chain {
	return &chain{handlers: handlers, req: req, res: res}
}

// run starts the chain from its first handler. A handler that never
// calls next halts the chain silently; that is part of the Handler
// contract, not an error.
func (c *chain) run() {
	c.next()
}

func (c *chain) next() {
	if c.pos >= len(c.handlers) {
		return
	}
	h := c.handlers[c.pos]
	c.pos++
	h(c.req, c.res, c.next)
}

// Package resthandlers provides reusable chain handlers for the rest
// dispatch core.
//
// # Access Log Handler
//
// AccessLog logs one structured line per completed request, including
// method, path, status, duration, and request ID:
//
//	srv.Use(resthandlers.AccessLog(resthandlers.AccessLogConfig{
//	    Logger: logger,
//	}))
//
// # Timeout Handler
//
// Timeout attaches a deadline to the request context so downstream
// handlers can observe cancellation, and answers 408 Request Timeout
// when the deadline expired and nothing was written:
//
//	h, err := resthandlers.Timeout(resthandlers.TimeoutConfig{
//	    Duration: 5 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv.Use(h)
//
// # Server Hostname Handler
//
// ServerHostname sets the X-Server-Hostname response header, resolving
// the name from configuration, environment variables, or os.Hostname:
//
//	h, err := resthandlers.ServerHostname(resthandlers.ServerHostnameConfig{
//	    HostnameEnv: []string{"POD_NAME", "HOSTNAME"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv.Use(h)
package resthandlers

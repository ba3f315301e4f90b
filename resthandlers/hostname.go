package resthandlers

import (
	"os"

	"github.com/avoltra/restkit/rest"
)

// ServerHostnameConfig configures the ServerHostname handler behaviour.
type ServerHostnameConfig struct {
	// Hostname is the value written to the X-Server-Hostname response
	// header. Resolution order: Hostname field, then HostnameEnv
	// environment variables, then os.Hostname.
	Hostname string

	// HostnameEnv is a list of environment variable names checked in
	// order (e.g. ["POD_NAME", "HOSTNAME"]). The first non-empty value
	// is used. Only consulted when Hostname is empty.
	HostnameEnv []string
}

// ServerHostname returns a handler that sets the X-Server-Hostname
// response header. The hostname is resolved once, when the handler is
// created. It returns an error if the hostname cannot be determined.
func ServerHostname(cfg ServerHostnameConfig) (rest.Handler, error) {
	hostname := cfg.Hostname

	if hostname == "" {
		for _, env := range cfg.HostnameEnv {
			if v, ok := os.LookupEnv(env); ok && v != "" {
				hostname = v
				break
			}
		}
	}

	if hostname == "" {
		h, err := os.Hostname()
		if err != nil {
			return nil, err
		}
		hostname = h
	}

	return func(req *rest.Request, res *rest.Response, next func()) {
		res.Header().Set("X-Server-Hostname", hostname)
		next()
	}, nil
}

package rest

import "strings"

// sanitizePath normalizes a raw request path: any run of consecutive
// slashes collapses into one, and a single trailing slash is stripped
// unless the path is the root "/". The function is idempotent, so a path
// that is already sanitized comes back unchanged.
//
// Unlike path.Clean, dot segments are left alone: the matcher compares
// decoded segments literally and a "." or ".." segment simply fails to
// match any registered pattern.
func sanitizePath(p string) string {
	if p == "" {
		return "/"
	}

	var b strings.Builder
	b.Grow(len(p))

	prevSlash := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}

	out := b.String()
	if len(out) > 1 && out[len(out)-1] == '/' {
		out = out[:len(out)-1]
	}
	return out
}

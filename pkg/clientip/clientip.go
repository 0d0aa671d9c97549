// Package clientip resolves the address of the client behind a request.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Headers are consulted in order before RemoteAddr. X-Forwarded-For may list
// several hops; the first valid address wins.
var Headers = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the normalized client address, or "" when none is valid.
func GetIP(r *http.Request) string {
	for _, name := range Headers {
		raw := r.Header.Get(name)
		if raw == "" {
			continue
		}
		for part := range strings.SplitSeq(raw, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}

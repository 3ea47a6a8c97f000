package httpapi

import (
	"net"
	"net/http"
	"strings"
)

// clientIPHeaders are consulted in order before falling back to RemoteAddr.
var clientIPHeaders = []string{"Fly-Client-IP", "CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// clientIP returns the first parseable address among the proxy headers and
// the connection's remote address, or "" when none parses.
func clientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		if ip := parseIP(r.Header.Get(header)); ip != "" {
			return ip
		}
	}
	return parseIP(r.RemoteAddr)
}

func parseIP(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	value := strings.TrimSpace(first)
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}
	if ip := net.ParseIP(value); ip != nil {
		return ip.String()
	}
	return ""
}

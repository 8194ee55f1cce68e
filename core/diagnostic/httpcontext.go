package diagnostic

import (
	"net"
	"net/http"
	"strings"
)

// RequestContextFromRequest builds the request section of a snapshot from
// an HTTP request. The client IP resolves through the usual proxy headers,
// so reports from services behind a load balancer name the real caller.
func RequestContextFromRequest(r *http.Request) map[string]any {
	if r == nil {
		return nil
	}
	ctx := map[string]any{
		"method": r.Method,
		"url":    r.URL.String(),
		"host":   r.Host,
	}
	if ip := clientIP(r); ip != "" {
		ctx["remote_ip"] = ip
	}
	if ua := r.UserAgent(); ua != "" {
		ctx["user_agent"] = ua
	}
	if ref := r.Referer(); ref != "" {
		ctx["referer"] = ref
	}
	return ctx
}

// clientIP extracts the client address, preferring proxy headers in order
// of reliability: CDN headers, then X-Forwarded-For's leftmost entry, then
// X-Real-IP, then the connection's remote address.
func clientIP(r *http.Request) string {
	for _, header := range []string{"CF-Connecting-IP", "DO-Connecting-IP"} {
		if ip := normalizeIP(r.Header.Get(header)); ip != "" {
			return ip
		}
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := normalizeIP(first); ip != "" {
			return ip
		}
	}
	if ip := normalizeIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return normalizeIP(host)
}

// normalizeIP validates and canonicalizes one address. The unspecified
// address means no usable client IP.
func normalizeIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}

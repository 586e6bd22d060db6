// Package clientip resolves the caller address of a request that reached the
// functions through the platform gateway.
package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Headers are consulted in order before falling back to RemoteAddr.
// X-Forwarded-For may list several hops; its first valid entry is the client.
var Headers = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// FromRequest returns the normalized client address, or "" if none parses.
func FromRequest(r *http.Request) string {
	for _, h := range Headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := normalize(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return normalize(host)
}

func normalize(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().String()
}

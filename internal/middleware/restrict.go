package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"paste-swamp/internal/engine/actors"

	"github.com/asynkron/protoactor-go/actor"
)

// IPRestrictionGuard rejects requests coming from addresses the moderation
// actor has restricted. Admin paths are exempt so an administrator can
// always undo a restriction that caught them too.
type IPRestrictionGuard struct {
	Context       *actor.RootContext
	ModerationPID *actor.PID
	Timeout       time.Duration
}

func NewIPRestrictionGuard(context *actor.RootContext, moderationPID *actor.PID, timeout time.Duration) *IPRestrictionGuard {
	return &IPRestrictionGuard{
		Context:       context,
		ModerationPID: moderationPID,
		Timeout:       timeout,
	}
}

func (g *IPRestrictionGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/admin/") || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		ip := ClientIP(r)
		future := g.Context.RequestFuture(g.ModerationPID, &actors.CheckIPMsg{IP: ip}, g.Timeout)
		result, err := future.Result()
		if err != nil {
			// The check is a courtesy gate, not the security boundary;
			// an unreachable moderation actor must not take the site down.
			log.Printf("IP restriction check failed for %s: %v", ip, err)
			next.ServeHTTP(w, r)
			return
		}

		if restricted, ok := result.(bool); ok && restricted {
			log.Printf("Rejected request from restricted IP %s", ip)
			http.Error(w, "Access from this address is restricted", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClientIP extracts the originating address, honoring X-Forwarded-For when
// a proxy set it.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

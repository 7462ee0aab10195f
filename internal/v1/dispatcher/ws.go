package dispatcher

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tablehost/internal/v1/logging"
)

// validateOrigin reports whether the request's Origin header, if present,
// matches one of the configured allowed origins by scheme and host.
func validateOrigin(r *http.Request, allowedOrigins []string) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	for _, allowed := range allowedOrigins {
		allowedURL, err := url.Parse(allowed)
		if err != nil {
			continue
		}
		if originURL.Scheme == allowedURL.Scheme && originURL.Host == allowedURL.Host {
			return true
		}
	}
	return false
}

// ServeWs upgrades an incoming HTTP request to a WebSocket connection and
// hands it to the hub. allowedOrigins gates the upgrade; an empty slice
// allows any origin, matching the permissive default used in local dev.
func (h *Hub) ServeWs(allowedOrigins []string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			return validateOrigin(r, allowedOrigins)
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logging.Warn(c.Request.Context(), "websocket upgrade failed", zap.Error(err))
			return
		}

		ip := c.ClientIP()
		if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
			ip = fwd
		}

		h.HandleConnection(conn, ip)
	}
}

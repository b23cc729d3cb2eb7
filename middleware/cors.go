package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"
)

// vercelOriginPattern matches Vercel preview and production deployment URLs
var vercelOriginPattern = regexp.MustCompile(`^https://[a-zA-Z0-9.-]+\.vercel\.app$`)

// CORS allows the configured origins plus any *.vercel.app deployment.
// OPTIONS requests are passed through so resource capability probes can
// answer them.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if originAllowed(allowed, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "PUT, GET, POST, DELETE, PATCH, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, X-Requested-With, X-Request-ID")
			c.Header("Access-Control-Expose-Headers", "X-Request-ID")
		}

		c.Next()
	}
}

func originAllowed(allowed map[string]struct{}, origin string) bool {
	if origin == "" {
		return false
	}
	if _, ok := allowed[origin]; ok {
		return true
	}
	return vercelOriginPattern.MatchString(origin)
}

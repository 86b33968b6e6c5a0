package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teampulse/server/internal/utils/requestctx"
)

// AcceptLanguageHeader is the header carrying the requester's language.
const AcceptLanguageHeader = "Accept-Language"

// Language returns a middleware that propagates the request's primary
// language code into the request context. Invitation emails are rendered in
// this language.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := primaryLanguage(c.GetHeader(AcceptLanguageHeader))
		if lang != "" {
			c.Request = c.Request.WithContext(requestctx.WithLanguage(c.Request.Context(), lang))
		}
		c.Next()
	}
}

// primaryLanguage extracts the first language tag from an Accept-Language
// value, e.g. "de-DE,de;q=0.9,en;q=0.8" yields "de-DE".
func primaryLanguage(header string) string {
	if header == "" {
		return ""
	}
	first := header
	if i := strings.IndexByte(first, ','); i >= 0 {
		first = first[:i]
	}
	if i := strings.IndexByte(first, ';'); i >= 0 {
		first = first[:i]
	}
	return strings.TrimSpace(first)
}

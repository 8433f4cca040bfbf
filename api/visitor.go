package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/naturalclinic/flightbooking/internal/locale"
)

const visitorCookie = "visitor_id"

// visitorID reads the visitor cookie, minting one on first contact. It is
// the service-side stand-in for the browser's local storage identity.
func visitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(visitorCookie, id, 365*24*3600, "/", "", false, true)
	return id
}

// requestSignals gathers the detection inputs carried on a request. The
// timezone identifier comes from the client since only the browser knows it.
func requestSignals(c *gin.Context) locale.Signals {
	return locale.Signals{
		BrowserLanguage: primaryLanguage(c.GetHeader("Accept-Language")),
		TimezoneID:      c.GetHeader("X-Timezone"),
		ClientIP:        c.ClientIP(),
	}
}

func primaryLanguage(header string) string {
	first, _, _ := strings.Cut(header, ",")
	tag, _, _ := strings.Cut(first, ";")
	return strings.TrimSpace(tag)
}

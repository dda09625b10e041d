package web

import "github.com/gin-gonic/gin"

const sessionCookieName = "session"

// setSessionCookie stores the session token in an HttpOnly cookie scoped
// to the whole site.
func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(sessionCookieName, token, int(s.config.SessionValidityDuration.Seconds()), "/", "", false, true)
}

// clearSessionCookie deletes the session cookie.
func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}

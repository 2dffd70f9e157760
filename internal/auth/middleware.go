package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bloodportal/internal/models"
)

const (
	CookieName = "bloodportal.sid"

	userKey    = "auth.user"
	sessionKey = "auth.session"
)

// UserLookup resolves the user a session belongs to.
type UserLookup interface {
	GetUser(id int64) (models.User, error)
}

type Middleware struct {
	sessions     *SessionStore
	users        UserLookup
	secureCookie bool
}

func NewMiddleware(sessions *SessionStore, users UserLookup, secureCookie bool) *Middleware {
	return &Middleware{sessions: sessions, users: users, secureCookie: secureCookie}
}

// LoadUser attaches the session's user to the request when the cookie names
// a live session. It never rejects a request.
func (m *Middleware) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		sess, ok := m.sessions.Lookup(token)
		if !ok {
			c.Next()
			return
		}
		user, err := m.users.GetUser(sess.UserID)
		if err != nil {
			m.sessions.Revoke(token)
			c.Next()
			return
		}
		c.Set(sessionKey, sess)
		c.Set(userKey, user)
		c.Next()
	}
}

// Login starts a session for user and sets the session cookie, replacing any
// session the request already carried.
func (m *Middleware) Login(c *gin.Context, user models.User) {
	if v, ok := c.Get(sessionKey); ok {
		m.sessions.Revoke(v.(Session).Token)
	}
	sess := m.sessions.Create(user.ID)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, sess.Token, int(m.sessions.TTL().Seconds()), "/", "", m.secureCookie, true)
	c.Set(sessionKey, sess)
	c.Set(userKey, user)
}

// Logout revokes the current session, if any, and clears the cookie.
func (m *Middleware) Logout(c *gin.Context) {
	if v, ok := c.Get(sessionKey); ok {
		m.sessions.Revoke(v.(Session).Token)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secureCookie, true)
}

func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// RequireUser aborts with 401 unless LoadUser found a user.
func RequireUser(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 401 for anonymous callers and 403 for non-admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator access required"})
			return
		}
		c.Next()
	}
}

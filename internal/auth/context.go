package auth

import "github.com/gin-gonic/gin"

const identityKey = "identity"

// Identity is the authenticated caller attached to every request by the auth
// middleware.
type Identity struct {
	ActorID string
	Email   string
	Role    string
}

// SetIdentity stores the caller identity on the request context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the caller identity, if the auth middleware ran.
func GetIdentity(c *gin.Context) (Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := val.(Identity)
	return id, ok
}

package auth

import (
	"log"
	"sync"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"PairTalk/client/internal/models"
)

// Identity holds the authenticated user. The engine only reads it; sign-in and
// profile updates are the only writers.
type Identity struct {
	mu    sync.RWMutex
	user  models.User
	token string
}

func NewIdentity() *Identity {
	return &Identity{}
}

func (i *Identity) SetSession(user models.User, token string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.user = user
	i.token = token
}

func (i *Identity) SetUser(user models.User) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.user = user
}

func (i *Identity) User() models.User {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.user
}

func (i *Identity) Token() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.token
}

// IsSelf reports whether userID is the authenticated user.
func (i *Identity) IsSelf(userID int) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.user.ID != 0 && i.user.ID == userID
}

// UserIDFromToken recovers the user_id claim from a stored access token. The
// client holds no signing secret, so claims are read unverified; the server
// still rejects a forged token on the first request.
func UserIDFromToken(tokenStr string) (int, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		return 0, errors.Wrap(err, "parsing access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return 0, errors.New("missing user_id claim")
	}

	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("invalid user_id claim")
	}

	log.Printf("Recovered user ID %d from stored token", int(id))
	return int(id), nil
}

package redis

import (
	"fmt"

	"github.com/betstack/betstack/internal/model"
)

// Key prefix for all platform data
const keyPrefix = "betstack"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// registeredUserKey returns the Redis key for a RegisteredUser
func registeredUserKey(userID model.UserID) string {
	return fmt.Sprintf("%s:registered_user:%s", keyPrefix, userID)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// sessionKey returns the Redis key for a Session
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}

// topupReceiptKey returns the Redis key for a TopupReceipt
func topupReceiptKey(reference string) string {
	return fmt.Sprintf("%s:topup:%s", keyPrefix, reference)
}

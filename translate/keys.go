// translate/keys.go

package translate

import "fmt"

// TypeUser is the translation type under which user logins are scoped.
const TypeUser = "user"

// UUIDKey is the translation cache key for a uuid→name entry.
func UUIDKey(uuid string) string {
	return uuid
}

// AccountKey is the translation cache key for an account login→uuid entry.
func AccountKey(login string) string {
	return "/account/" + login
}

// NameKey is the translation cache key for a name→uuid entry scoped by the
// owning account's login and the translation type, so logins of different
// accounts and types never collide.
func NameKey(account, translationType, name string) string {
	return fmt.Sprintf("/account/%s/%s/%s", account, translationType, name)
}

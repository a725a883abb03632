package auth

import "strings"

// Route prefixes gated by the presence of a session cookie.
var (
	ProtectedRoutes = []string{"/dashboard", "/history"}
	AuthRoutes      = []string{"/login", "/signup"}
)

const (
	HomePath  = "/home"
	LoginPath = "/login"
)

func matchesAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

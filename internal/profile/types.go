package profile

import (
	"sort"

	"github.com/nerrad567/usbgate/internal/device"
)

// User is one login's authorisation profile: the login name and the ordered
// list of device fingerprints that may authenticate it.
//
// Users are constructed at load time and read-only for the remainder of the
// process. An empty fingerprint list is permitted and authenticates nothing.
type User struct {
	Login        string
	Fingerprints []device.Fingerprint
}

// Model is the validated, immutable per-login authorisation model.
//
// Lookups are by exact, case-sensitive login match. The zero Model is usable
// and contains no users.
type Model struct {
	users map[string]User
}

// Lookup returns the user for the given login, matched by exact string
// equality. The second return value reports whether the login exists.
func (m *Model) Lookup(login string) (User, bool) {
	u, ok := m.users[login]
	return u, ok
}

// UserCount returns the number of users in the model.
func (m *Model) UserCount() int {
	return len(m.users)
}

// Users returns all users sorted by login, for reporting and diagnostics.
func (m *Model) Users() []User {
	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Login < users[j].Login })
	return users
}

package permission

import "strings"

// Role is one of the fixed staff roles.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
	RoleAccountant   Role = "accountant"
)

// Key identifies one admin-panel page a role/user may access.
type Key string

const (
	KeyDashboard Key = "dashboard"
	KeyRooms     Key = "rooms"
	KeyGuests    Key = "guests"
	KeyBookings  Key = "bookings"
	KeyCalendar  Key = "calendar"
	KeyReports   Key = "reports"
	KeyUsers     Key = "users"
)

// PageOption describes one admin-panel page.
type PageOption struct {
	Key   Key
	Label string
	Path  string
}

// PageOptions is the closed set of pages, in sidebar order. The order matters:
// FirstAllowedPath picks the first page here that the user holds.
var PageOptions = []PageOption{
	{Key: KeyDashboard, Label: "Dashboard", Path: "/"},
	{Key: KeyRooms, Label: "Rooms", Path: "/rooms"},
	{Key: KeyGuests, Label: "Guests", Path: "/guests"},
	{Key: KeyBookings, Label: "Booking", Path: "/bookings"},
	{Key: KeyCalendar, Label: "Calendar", Path: "/calendar"},
	{Key: KeyReports, Label: "Reports", Path: "/reports"},
	{Key: KeyUsers, Label: "Users", Path: "/users"},
}

// RoleDefaults maps each role to the pages it gets when no explicit
// permission set is stored.
var RoleDefaults = map[Role][]Key{
	RoleAdmin:        allKeys(),
	RoleReceptionist: {KeyDashboard, KeyRooms, KeyGuests, KeyBookings, KeyCalendar},
	RoleAccountant:   {KeyDashboard, KeyReports},
}

func allKeys() []Key {
	keys := make([]Key, len(PageOptions))
	for i, p := range PageOptions {
		keys[i] = p.Key
	}
	return keys
}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleReceptionist, RoleAccountant:
		return true
	}
	return false
}

// Normalize returns the effective permission set for the given stored list and
// role: trimmed, lowercased, deduplicated, restricted to known page keys, with
// the dashboard key always present and first. When the stored list is empty or
// contains nothing valid, the role's default set is used. Unknown keys are
// dropped silently; this function never fails.
func Normalize(permissions []string, role Role) []Key {
	known := make(map[Key]bool, len(PageOptions))
	for _, p := range PageOptions {
		known[p.Key] = true
	}

	base := permissions
	if len(base) == 0 {
		base = roleDefaultStrings(role)
	}

	seen := make(map[Key]bool, len(base))
	var unique []Key
	for _, raw := range base {
		key := Key(strings.ToLower(strings.TrimSpace(raw)))
		if !known[key] || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, key)
	}

	// A stored list made entirely of unknown keys is treated as empty.
	if len(unique) == 0 {
		for _, key := range RoleDefaults[roleOrFallback(role)] {
			if !seen[key] {
				seen[key] = true
				unique = append(unique, key)
			}
		}
	}

	if !seen[KeyDashboard] {
		unique = append([]Key{KeyDashboard}, unique...)
	}
	return unique
}

// HasPermission reports whether a user with the given role and stored
// permission list may access the page. Admins may access everything
// regardless of what is stored.
func HasPermission(role Role, permissions []string, key Key) bool {
	if key == "" {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	for _, k := range Normalize(permissions, role) {
		if k == key {
			return true
		}
	}
	return false
}

// FirstAllowedPath returns the route path of the first page (in PageOptions
// order) the user holds, defaulting to "/".
func FirstAllowedPath(role Role, permissions []string) string {
	held := make(map[Key]bool)
	for _, k := range Normalize(permissions, role) {
		held[k] = true
	}
	for _, p := range PageOptions {
		if held[p.Key] {
			return p.Path
		}
	}
	return "/"
}

func roleDefaultStrings(role Role) []string {
	keys := RoleDefaults[roleOrFallback(role)]
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

// roleOrFallback maps unknown roles to a dashboard-only default.
func roleOrFallback(role Role) Role {
	if _, ok := RoleDefaults[role]; ok {
		return role
	}
	return Role("")
}

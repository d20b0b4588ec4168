// Package authz holds the ownership and visibility rules as pure
// predicates over a record and the caller's identity. They live outside
// the repositories so the repositories stay storage-only and the rules
// are testable in isolation.
package authz

import "github.com/dmitrijs2005/filehost/internal/server/models"

// Principal is the authenticated identity an operation runs on behalf of.
// The zero value is the anonymous caller.
type Principal struct {
	UserID  int64
	IsAdmin bool
}

// Anonymous is the principal of unauthenticated requests.
var Anonymous = Principal{}

func (p Principal) Authenticated() bool { return p.UserID != 0 }

// CanReadFile reports whether p may download f: the owner always may,
// anyone may when the file is public.
func CanReadFile(p Principal, f *models.File) bool {
	return f.IsPublic.Bool() || (p.Authenticated() && p.UserID == f.UserID)
}

// CanModifyFile reports whether p may change or delete f. Only the owner
// may. Callers must surface a failed check exactly like a missing record,
// so foreign file IDs cannot be probed for existence.
func CanModifyFile(p Principal, f *models.File) bool {
	return p.Authenticated() && p.UserID == f.UserID
}

// CanManageApps reports whether p may publish or delete app packages.
func CanManageApps(p Principal) bool {
	return p.Authenticated() && p.IsAdmin
}

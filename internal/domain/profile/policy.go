package profile

import (
	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-hub/internal/domain/role"
)

// CanModify reports whether the viewer may edit or delete p. It only decides
// which affordances to offer and whether to send a mutation at all; the
// row-level policies in the store are what actually enforce ownership.
func CanModify(p *Profile, viewerID uuid.UUID, viewerRole role.Role) bool {
	if p == nil {
		return false
	}
	if viewerRole == role.RoleAdmin {
		return true
	}
	return viewerID != uuid.Nil && p.OwnerID == viewerID
}

// VisibleTo derives the dashboard set: admins get all profiles unchanged,
// everyone else only the ones they own. Order is preserved.
func VisibleTo(all []*Profile, viewerID uuid.UUID, viewerRole role.Role) []*Profile {
	if viewerRole == role.RoleAdmin {
		return all
	}
	out := make([]*Profile, 0, len(all))
	if viewerID == uuid.Nil {
		return out
	}
	for _, p := range all {
		if p.OwnerID == viewerID {
			out = append(out, p)
		}
	}
	return out
}

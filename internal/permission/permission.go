package permission

import "github.com/google/uuid"

// Role yang dikenal aplikasi. MANAGER adalah satu-satunya role elevated.
const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleCoworker = "COWORKER"
)

// Actor adalah identitas minimal pemanggil untuk evaluasi permission.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsElevated() bool {
	return a.Role == RoleManager
}

// Predicate di package ini murni dan sinkron: tanpa akses data store, tanpa
// side effect. Semuanya dievaluasi SETELAH fetch yang sudah tenant-scoped —
// isolasi tenant mencegah akses lintas organisasi, predicate mencegah akses
// lintas role/orang di dalam organisasi yang sama. Dua-duanya wajib.

// CanGiveFeedback: tidak boleh memberi feedback ke diri sendiri.
func CanGiveFeedback(actor Actor, receiverID uuid.UUID) bool {
	return actor.ID != receiverID
}

// CanViewFeedback: penerima, pemberi, atau role elevated.
func CanViewFeedback(actor Actor, giverID, receiverID uuid.UUID) bool {
	if actor.IsElevated() {
		return true
	}
	return actor.ID == giverID || actor.ID == receiverID
}

// CanDeleteFeedback: pemberi atau role elevated.
func CanDeleteFeedback(actor Actor, giverID uuid.UUID) bool {
	return actor.IsElevated() || actor.ID == giverID
}

// CanViewProfile: diri sendiri selalu boleh; MANAGER dan COWORKER punya
// visibilitas direktori; EMPLOYEE hanya melihat profil sendiri.
func CanViewProfile(actor Actor, subjectID uuid.UUID) bool {
	if actor.ID == subjectID {
		return true
	}
	return actor.Role == RoleManager || actor.Role == RoleCoworker
}

// CanReviewAbsence: hanya MANAGER, dan tidak untuk pengajuannya sendiri.
func CanReviewAbsence(actor Actor, requesterID uuid.UUID) bool {
	return actor.IsElevated() && actor.ID != requesterID
}

// CanManageMembers: undang, revoke, deactivate anggota.
func CanManageMembers(actor Actor) bool {
	return actor.IsElevated()
}

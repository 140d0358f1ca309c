// file: internals/features/library/access/service/access_resolver.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pustakaedu_backend/internals/features/library/access/model"
	bookModel "pustakaedu_backend/internals/features/library/books/model"
	userService "pustakaedu_backend/internals/features/users/user/service"
)

// Alasan keputusan akses (dipakai viewer untuk routing: beli / hubungi sekolah)
const (
	ReasonPublic           = "public"
	ReasonDirectAccess     = "direct_access"
	ReasonDirectAssignment = "direct_assignment"
	ReasonGroupAssignment  = "group_assignment"
	ReasonGradeAssignment  = "grade_assignment"
	ReasonSchoolAssignment = "school_assignment"
	ReasonNotAssigned      = "not_assigned"
	ReasonExpired          = "expired"
	ReasonRevoked          = "revoked"
)

// AccessDecision — hasil resolve (user, book). ExpiresAt nil = tanpa batas.
type AccessDecision struct {
	Granted   bool       `json:"granted"`
	Reason    string     `json:"reason"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// expiryFold mengumpulkan semua expiry dari mekanisme yang match dan
// memilih yang PALING longgar: satu grant valid saja sudah cukup, jadi
// user tidak boleh kehilangan akses hanya karena grant pendek dievaluasi duluan.
type expiryFold struct {
	granted   bool
	unbounded bool
	latest    time.Time
	reason    string
}

func (f *expiryFold) add(reason string, expiry *time.Time) {
	if !f.granted {
		f.reason = reason // mekanisme match pertama (urutan precedence) jadi alasan
	}
	f.granted = true
	if expiry == nil {
		f.unbounded = true
		return
	}
	if expiry.After(f.latest) {
		f.latest = *expiry
	}
}

func (f *expiryFold) decision() AccessDecision {
	if !f.granted {
		return AccessDecision{Granted: false, Reason: ReasonNotAssigned}
	}
	if f.unbounded {
		return AccessDecision{Granted: true, Reason: f.reason}
	}
	latest := f.latest
	return AccessDecision{Granted: true, Reason: f.reason, ExpiresAt: &latest}
}

// ResolveAccess menentukan apakah user boleh membuka buku, sampai kapan.
// Murni read — aman dipanggil di setiap page view. Urutan mekanisme:
// public → akses langsung → assignment langsung → group → grade → school.
// Semua mekanisme tetap dievaluasi untuk mengambil expiry maksimum.
func ResolveAccess(db *gorm.DB, userID uuid.UUID, bookSanityID string, now time.Time) (AccessDecision, error) {
	fold := &expiryFold{}

	// Proyeksi lokal buku (boleh belum ada — assignment tetap berlaku by sanity id)
	var book *bookModel.BookModel
	var b bookModel.BookModel
	err := db.Where("book_sanity_id = ?", bookSanityID).First(&b).Error
	switch {
	case err == nil:
		book = &b
	case errors.Is(err, gorm.ErrRecordNotFound):
		book = nil
	default:
		return AccessDecision{}, err
	}

	// 1) Buku public/free → granted tanpa batas
	if book != nil && book.BookIsActive && book.BookIsPublic {
		fold.add(ReasonPublic, nil)
	}

	resolved, err := userService.ResolveByID(db, userID)
	if err != nil {
		return AccessDecision{}, err
	}

	// 2) BookAccess langsung — satu query untuk row (user, book)
	deniedReason := ReasonNotAssigned
	if book != nil {
		var accesses []model.BookAccessModel
		if err := db.Where("access_user_id = ? AND access_book_id = ?", userID, book.BookID).
			Find(&accesses).Error; err != nil {
			return AccessDecision{}, err
		}
		for i := range accesses {
			a := &accesses[i]
			if a.EffectivelyActive(now) {
				expiry := a.AccessEndDate
				fold.add(ReasonDirectAccess, &expiry)
				continue
			}
			// Row ada tapi tidak valid → alasan penolakan yang lebih spesifik
			switch {
			case a.AccessStatus == model.AccessStatusRevoked:
				deniedReason = ReasonRevoked
			case a.AccessStatus == model.AccessStatusExpired || now.After(a.AccessEndDate):
				if deniedReason != ReasonRevoked {
					deniedReason = ReasonExpired
				}
			}
		}
	}

	// 3–6) Semua assignment untuk buku ini dalam satu query, dicocokkan
	// ke membership user saat ini (evaluasi resolve-time, tanpa fan-out write).
	var assignments []model.BookAssignmentModel
	if err := db.Where("assignment_book_sanity_id = ? AND assignment_is_active = ?", bookSanityID, true).
		Find(&assignments).Error; err != nil {
		return AccessDecision{}, err
	}

	groupSet := toSet(resolved.GroupIDs)
	gradeSet := toSet(resolved.GradeIDs)

	// Bucket per mekanisme dulu supaya urutan precedence alasan tidak
	// tergantung urutan row dari DB.
	matched := map[string][]*time.Time{}
	for i := range assignments {
		a := &assignments[i]

		// Cocokkan target ke user dulu; validitas window dicek setelahnya
		// supaya assignment yang match tapi kedaluwarsa tetap menyumbang
		// alasan penolakan "expired", bukan "not_assigned".
		var reason string
		switch a.AssignmentTargetType {
		case model.AssignmentTargetStudent, model.AssignmentTargetTeacher:
			if a.AssignmentTargetID == userID {
				reason = ReasonDirectAssignment
			}
		case model.AssignmentTargetGroup:
			if groupSet[a.AssignmentTargetID] {
				reason = ReasonGroupAssignment
			}
		case model.AssignmentTargetGrade:
			if gradeSet[a.AssignmentTargetID] {
				reason = ReasonGradeAssignment
			}
		case model.AssignmentTargetSchool:
			if resolved.SchoolID != nil && *resolved.SchoolID == a.AssignmentTargetID {
				reason = ReasonSchoolAssignment
			}
		}
		if reason == "" {
			continue
		}
		if !a.CurrentlyValid(now) {
			if a.AssignmentEndDate != nil && now.After(*a.AssignmentEndDate) && deniedReason != ReasonRevoked {
				deniedReason = ReasonExpired
			}
			continue
		}
		matched[reason] = append(matched[reason], a.AssignmentEndDate)
	}
	for _, reason := range []string{ReasonDirectAssignment, ReasonGroupAssignment, ReasonGradeAssignment, ReasonSchoolAssignment} {
		for _, expiry := range matched[reason] {
			fold.add(reason, expiry)
		}
	}

	decision := fold.decision()
	if !decision.Granted {
		decision.Reason = deniedReason
	}
	return decision, nil
}

func toSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

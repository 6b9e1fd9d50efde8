package report

// RemitStatus is the derived class-completion view of a remittance. It is
// computed per request and never stored; the workflow status carried on a
// remittance row (pending verification, verified, rejected) is a different
// axis and is not consulted here.
type RemitStatus string

const (
	StatusCompleted   RemitStatus = "COMPLETED"
	StatusPartial     RemitStatus = "PARTIAL"
	StatusNotRemitted RemitStatus = "NOT_REMITTED"
)

// CalculateStatus classifies one class's remittance for one fee from counts
// prefetched by the caller.
//
// Remittance is an explicit act by the treasurer: without a remittance row the
// result is NOT_REMITTED no matter how many students have paid. With one, the
// class is COMPLETED when every rostered student has a Paid payment for the
// fee. An empty roster counts as vacuously complete.
func CalculateStatus(hasRemittance bool, totalStudents, paidStudents int) RemitStatus {
	if !hasRemittance {
		return StatusNotRemitted
	}
	if totalStudents == 0 || paidStudents >= totalStudents {
		return StatusCompleted
	}
	return StatusPartial
}

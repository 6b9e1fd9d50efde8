package domain

// Account roles as stored in accounts.role. The set is fixed; there is no
// dynamic grant store behind these.
const (
	RoleAdmin          = "Admin"
	RoleOrgTreasurer   = "Org_Treasurer"
	RoleClassTreasurer = "Class_Treasurer"
)

// ClassIdentity is the unit over which fee completion is evaluated: every
// student belongs to exactly one (program, year level, section).
type ClassIdentity struct {
	ProgramID string
	YearLevel int
	Section   string
}

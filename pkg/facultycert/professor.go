package facultycert

// Professor is either a KnownProfessor, linked to a user account, or an UnlinkedProfessor
// that only exists in the course history.
type Professor interface {
	DisplayName() string
	ExternalProfessorID() string
	isProfessor()
}

type KnownProfessor struct {
	UserID      string
	Name        string
	Email       string
	ProfessorID string
}

func (p KnownProfessor) DisplayName() string         { return p.Name }
func (p KnownProfessor) ExternalProfessorID() string { return p.ProfessorID }
func (KnownProfessor) isProfessor()                  {}

type UnlinkedProfessor struct {
	Name       string
	ExternalID string
}

func (p UnlinkedProfessor) DisplayName() string         { return p.Name }
func (p UnlinkedProfessor) ExternalProfessorID() string { return p.ExternalID }
func (UnlinkedProfessor) isProfessor()                  {}

// LinkedUserID returns the account id of a KnownProfessor.
func LinkedUserID(p Professor) (string, bool) {
	known, ok := p.(KnownProfessor)
	if !ok || known.UserID == "" {
		return "", false
	}
	return known.UserID, true
}

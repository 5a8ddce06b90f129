package issuer

import (
	"context"
	"errors"
	"fmt"

	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"gorm.io/gorm"
)

// resolveProfessor links the external id to an account: first by professor id, then by
// display name. Without a match the professor stays unlinked.
func (i *Issuer) resolveProfessor(ctx context.Context, professorID, displayName string) (facultycert.Professor, error) {
	unlinked := facultycert.UnlinkedProfessor{Name: displayName, ExternalID: professorID}
	if i.Professors == nil {
		return unlinked, nil
	}

	user, err := i.Professors.GetByProfessorID(ctx, nil, professorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up professor %s: %w", professorID, err)
	}

	if user == nil && displayName != "" {
		user, err = i.Professors.FindProfessorByName(ctx, nil, displayName)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up professor %q: %w", displayName, err)
		}
		// a name match already linked to another id is not this professor
		if user != nil && user.ExternalProfessorID() != "" && user.ExternalProfessorID() != professorID {
			user = nil
		}
	}

	if user == nil {
		return unlinked, nil
	}

	name := displayName
	if name == "" {
		name = user.FullName()
	}

	return facultycert.KnownProfessor{
		UserID:      user.ID,
		Name:        name,
		Email:       user.Email,
		ProfessorID: professorID,
	}, nil
}

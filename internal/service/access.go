package service

import (
	"invare-backend/internal/apperr"
	"invare-backend/internal/domain"
)

// authorizeProjectAccess is the single project-visibility rule: admins see
// everything, employees see projects they are assigned to, clients see
// projects they own. Callers that looked the project up by id should translate
// the Forbidden into what their endpoint promises (some endpoints hide
// existence with a 404 instead).
func authorizeProjectAccess(actor Actor, project *domain.Project) error {
	switch actor.Role {
	case domain.UserRoleAdmin:
		return nil
	case domain.UserRoleEmployee:
		if project.HasEmployee(actor.ID) {
			return nil
		}
		return apperr.Forbidden("you are not assigned to this project")
	default:
		if project.UserID == actor.ID {
			return nil
		}
		return apperr.Forbidden("you do not have access to this project")
	}
}

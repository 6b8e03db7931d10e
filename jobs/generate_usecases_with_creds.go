package jobs

import (
	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/usecases"
)

// GenerateUsecaseWithCredForAdmin wraps the job usecases with the review
// admin identity. Batch runs are operator-triggered and bypass the login
// flow, so they act with the widest role.
func GenerateUsecaseWithCredForAdmin(jobUsecases usecases.Usecases) usecases.UsecasesWithCreds {
	return usecases.UsecasesWithCreds{
		Usecases:    jobUsecases,
		Credentials: models.NewAdminCredentials(),
	}
}

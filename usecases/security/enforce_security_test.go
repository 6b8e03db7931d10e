package security_test

import (
	"testing"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/usecases/security"
)

func Test_ReadQueue(t *testing.T) {
	t.Run("adjudicator", func(t *testing.T) {
		creds := models.NewGroupCredentials(models.GroupA)
		sec := security.EnforceSecurityAdjudicationImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: creds},
			Credentials:     creds,
		}

		t.Run("own group", func(t *testing.T) {
			err := sec.ReadQueue(models.GroupA)
			if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
		t.Run("other group", func(t *testing.T) {
			err := sec.ReadQueue(models.GroupB)
			if err == nil {
				t.Errorf("Expected error, got nil")
			}
		})
	})

	t.Run("review admin", func(t *testing.T) {
		creds := models.NewAdminCredentials()
		sec := security.EnforceSecurityAdjudicationImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: creds},
			Credentials:     creds,
		}

		t.Run("any group", func(t *testing.T) {
			for _, group := range models.AllGroups {
				if err := sec.ReadQueue(group); err != nil {
					t.Errorf("Expected no error for %s, got %v", group, err)
				}
			}
		})
	})

	t.Run("evaluator", func(t *testing.T) {
		creds := models.NewEvaluatorCredentials("Evaluator 1", models.GroupA)
		sec := security.EnforceSecurityAdjudicationImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: creds},
			Credentials:     creds,
		}

		t.Run("denied even for own group", func(t *testing.T) {
			err := sec.ReadQueue(models.GroupA)
			if err == nil {
				t.Errorf("Expected error, got nil")
			}
		})
	})
}

func Test_SubmitAdjudication(t *testing.T) {
	t.Run("adjudicator in own group", func(t *testing.T) {
		creds := models.NewGroupCredentials(models.GroupC)
		sec := security.EnforceSecurityAdjudicationImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: creds},
			Credentials:     creds,
		}

		if err := sec.SubmitAdjudication(models.GroupC); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		if err := sec.SubmitAdjudication(models.GroupA); err == nil {
			t.Errorf("Expected error, got nil")
		}
	})

	t.Run("no role", func(t *testing.T) {
		sec := security.EnforceSecurityAdjudicationImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: models.Credentials{}},
			Credentials:     models.Credentials{},
		}

		if err := sec.SubmitAdjudication(models.GroupA); err == nil {
			t.Errorf("Expected error, got nil")
		}
	})
}

func Test_ReadEvaluation(t *testing.T) {
	t.Run("evaluator", func(t *testing.T) {
		creds := models.NewEvaluatorCredentials("Evaluator 3", models.GroupB)
		sec := security.EnforceSecurityEvaluationImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: creds},
			Credentials:     creds,
		}

		t.Run("own records", func(t *testing.T) {
			err := sec.ReadEvaluation("Evaluator 3")
			if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
		t.Run("another evaluator's records", func(t *testing.T) {
			err := sec.ReadEvaluation("Evaluator 4")
			if err == nil {
				t.Errorf("Expected error, got nil")
			}
		})
	})

	t.Run("review admin reads anyone", func(t *testing.T) {
		creds := models.NewAdminCredentials()
		sec := security.EnforceSecurityEvaluationImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: creds},
			Credentials:     creds,
		}

		err := sec.ReadEvaluation("Evaluator 5")
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("adjudicator has no evaluation access", func(t *testing.T) {
		creds := models.NewGroupCredentials(models.GroupB)
		sec := security.EnforceSecurityEvaluationImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: creds},
			Credentials:     creds,
		}

		err := sec.ReadEvaluation("Evaluator 3")
		if err == nil {
			t.Errorf("Expected error, got nil")
		}
	})
}

func Test_SubmitGrade(t *testing.T) {
	t.Run("evaluator under own name", func(t *testing.T) {
		creds := models.NewEvaluatorCredentials("Evaluator 6", models.GroupC)
		sec := security.EnforceSecurityEvaluationImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: creds},
			Credentials:     creds,
		}

		if err := sec.SubmitGrade("Evaluator 6"); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		if err := sec.SubmitGrade("Evaluator 5"); err == nil {
			t.Errorf("Expected error, got nil")
		}
	})

	t.Run("review admin cannot grade", func(t *testing.T) {
		creds := models.NewAdminCredentials()
		sec := security.EnforceSecurityEvaluationImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: creds},
			Credentials:     creds,
		}

		err := sec.SubmitGrade("admin")
		if err == nil {
			t.Errorf("Expected error, got nil")
		}
	})
}

func Test_AdminOperations(t *testing.T) {
	t.Run("review admin", func(t *testing.T) {
		creds := models.NewAdminCredentials()
		sec := security.EnforceSecurityAdminImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: creds},
			Credentials:     creds,
		}

		if err := sec.ReadDashboard(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		if err := sec.RunRecovery(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		if err := sec.ResetEvaluations(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		if err := sec.MergeDataset(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		if err := sec.PreparePartition(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("adjudicator", func(t *testing.T) {
		creds := models.NewGroupCredentials(models.GroupA)
		sec := security.EnforceSecurityAdminImpl{
			EnforceSecurity: &security.EnforceSecurityImpl{Credentials: creds},
			Credentials:     creds,
		}

		if err := sec.ReadDashboard(); err == nil {
			t.Errorf("Expected error, got nil")
		}
		if err := sec.RunRecovery(); err == nil {
			t.Errorf("Expected error, got nil")
		}
	})
}

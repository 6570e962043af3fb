package ownership

import (
	"errors"
	"testing"

	"sugary-backend/apperrors"
	"sugary-backend/plan"
	"sugary-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const (
	ownerID   = "11111111-e89b-12d3-a456-426614174000"
	otherID   = "22222222-e89b-12d3-a456-426614174000"
	companyID = "33333333-e89b-12d3-a456-426614174000"
	featureID = "44444444-e89b-12d3-a456-426614174000"
)

func TestResolveCompany_None(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "companies" WHERE owner_id = \$1 (.+)`).
		WithArgs(ownerID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	company, err := ResolveCompany(ownerID)
	assert.NoError(t, err)
	assert.Nil(t, company)
}

func TestRequireCompany_None(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "companies" WHERE owner_id = \$1 (.+)`).
		WithArgs(ownerID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := RequireCompany(ownerID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResolveOwnedFeature_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "features" WHERE id = \$1 (.+)`).
		WithArgs(featureID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "title", "slug", "status"}).
			AddRow(featureID, companyID, "Dark Mode", "dark-mode", "todo"))

	mock.ExpectQuery(`SELECT (.+) FROM "companies" WHERE id = \$1 (.+)`).
		WithArgs(companyID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "owner_id"}).
			AddRow(companyID, "acme", "Acme", ownerID))

	owned, err := ResolveOwnedFeature(ownerID, featureID)
	assert.NoError(t, err)
	assert.Equal(t, featureID, owned.Feature.ID)
	assert.Equal(t, companyID, owned.Company.ID)
}

func TestResolveOwnedFeature_NotOwner(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "features" WHERE id = \$1 (.+)`).
		WithArgs(featureID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "title", "slug", "status"}).
			AddRow(featureID, companyID, "Dark Mode", "dark-mode", "todo"))

	mock.ExpectQuery(`SELECT (.+) FROM "companies" WHERE id = \$1 (.+)`).
		WithArgs(companyID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "owner_id"}).
			AddRow(companyID, "acme", "Acme", ownerID))

	_, err := ResolveOwnedFeature(otherID, featureID)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}

func TestResolveOwnedFeature_Missing(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "features" WHERE id = \$1 (.+)`).
		WithArgs(featureID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := ResolveOwnedFeature(ownerID, featureID)
	// missing and foreign features are indistinguishable on purpose
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}

func TestPlanForOwner(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE user_id = \$1 (.+)`).
		WithArgs(ownerID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status"}).
			AddRow("sub-1", ownerID, "active"))

	p, err := PlanForOwner(ownerID)
	assert.NoError(t, err)
	assert.Equal(t, plan.Pro, p)

	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE user_id = \$1 (.+)`).
		WithArgs(otherID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	p, err = PlanForOwner(otherID)
	assert.NoError(t, err)
	assert.Equal(t, plan.Free, p)
}

func TestPlanForOwner_QueryError(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	// a transient failure must not read as "no subscription"
	mock.ExpectQuery(`SELECT (.+) FROM "subscriptions" WHERE user_id = \$1 (.+)`).
		WithArgs(ownerID, 1).
		WillReturnError(errors.New("connection reset"))

	_, err := PlanForOwner(ownerID)
	assert.Error(t, err)
}

package resources

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/farmtrackhq/farmtrack-backend/pkg/db/models"
	"github.com/farmtrackhq/farmtrack-backend/pkg/enums"
	pkgerrors "github.com/farmtrackhq/farmtrack-backend/pkg/errors"
)

func setupResourcesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	resources := `
CREATE TABLE IF NOT EXISTS resources (
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  quantity NUMERIC NOT NULL DEFAULT 0,
  unit TEXT NOT NULL,
  usage_status TEXT NOT NULL DEFAULT 'available',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(resources).Error)
	return db
}

func newResourceTestService(t *testing.T) (Service, uuid.UUID) {
	t.Helper()
	conn := setupResourcesTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	owner := &models.User{
		ID:           uuid.New(),
		Username:     fmt.Sprintf("ft_test_%s", uuid.NewString()),
		PasswordHash: "hash",
	}
	require.NoError(t, conn.Create(owner).Error)
	return svc, owner.ID
}

func validResourceRequest() CreateResourceRequest {
	return CreateResourceRequest{
		Name:     "NPK Fertilizer",
		Type:     "fertilizer",
		Quantity: decimal.NewFromFloat(50.5),
		Unit:     enums.ResourceUnitKgs,
	}
}

func TestServiceCreateResourceDefaultsUsageStatus(t *testing.T) {
	svc, owner := newResourceTestService(t)

	resource, err := svc.Create(context.Background(), owner, validResourceRequest())
	require.NoError(t, err)

	assert.Equal(t, enums.ResourceUsageAvailable, resource.UsageStatus)
	assert.True(t, resource.Quantity.Equal(decimal.NewFromFloat(50.5)))
}

func TestServiceCreateResourceRejectsNegativeQuantity(t *testing.T) {
	svc, owner := newResourceTestService(t)

	req := validResourceRequest()
	req.Quantity = decimal.NewFromInt(-1)
	_, err := svc.Create(context.Background(), owner, req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceCreateResourceRejectsInvalidUnit(t *testing.T) {
	svc, owner := newResourceTestService(t)

	req := validResourceRequest()
	req.Unit = enums.ResourceUnit("bushels")
	_, err := svc.Create(context.Background(), owner, req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceUpdateResourcePartial(t *testing.T) {
	svc, owner := newResourceTestService(t)

	resource, err := svc.Create(context.Background(), owner, validResourceRequest())
	require.NoError(t, err)

	quantity := decimal.NewFromInt(10)
	status := enums.ResourceUsageDepleted
	updated, err := svc.Update(context.Background(), owner, resource.ID, UpdateResourceRequest{
		Quantity:    &quantity,
		UsageStatus: &status,
	})
	require.NoError(t, err)

	assert.True(t, updated.Quantity.Equal(quantity))
	assert.Equal(t, enums.ResourceUsageDepleted, updated.UsageStatus)
	assert.Equal(t, "NPK Fertilizer", updated.Name)
}

func TestServiceUpdateResourceRejectsInvalidUsageStatus(t *testing.T) {
	svc, owner := newResourceTestService(t)

	resource, err := svc.Create(context.Background(), owner, validResourceRequest())
	require.NoError(t, err)

	status := enums.ResourceUsageStatus("lost")
	_, err = svc.Update(context.Background(), owner, resource.ID, UpdateResourceRequest{UsageStatus: &status})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceResourceOwnerScoping(t *testing.T) {
	svc, owner := newResourceTestService(t)

	resource, err := svc.Create(context.Background(), owner, validResourceRequest())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), resource.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	err = svc.Delete(context.Background(), uuid.New(), resource.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceDeleteResource(t *testing.T) {
	svc, owner := newResourceTestService(t)

	resource, err := svc.Create(context.Background(), owner, validResourceRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), owner, resource.ID))

	_, err = svc.Get(context.Background(), owner, resource.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceListResourcesPaginates(t *testing.T) {
	svc, owner := newResourceTestService(t)

	for i := 0; i < 3; i++ {
		req := validResourceRequest()
		req.Name = fmt.Sprintf("Resource %d", i)
		_, err := svc.Create(context.Background(), owner, req)
		require.NoError(t, err)
	}

	first, err := svc.List(context.Background(), ListParams{OwnerID: owner, Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.Cursor)

	second, err := svc.List(context.Background(), ListParams{OwnerID: owner, Limit: 2, Cursor: first.Cursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Empty(t, second.Cursor)
}

package crops

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmtrackhq/farmtrack-backend/pkg/db"
	"github.com/farmtrackhq/farmtrack-backend/pkg/db/models"
	"github.com/farmtrackhq/farmtrack-backend/pkg/enums"
	pkgerrors "github.com/farmtrackhq/farmtrack-backend/pkg/errors"
	"github.com/farmtrackhq/farmtrack-backend/pkg/types"
)

type recordingEvaluator struct {
	saved []*models.Crop
}

func (r *recordingEvaluator) CropSaved(ctx context.Context, crop *models.Crop, now time.Time) {
	r.saved = append(r.saved, crop)
}

func newCropTestService(t *testing.T) (Service, *recordingEvaluator, *models.User) {
	t.Helper()
	conn := setupCropsTestDB(t)
	evaluator := &recordingEvaluator{}
	svc, err := NewService(NewRepository(conn), db.NewFromConn(conn), evaluator)
	require.NoError(t, err)
	return svc, evaluator, mustCreateOwner(t, conn)
}

func validCreateRequest() CreateCropRequest {
	return CreateCropRequest{
		Name:         "Maize",
		Variety:      "Hybrid 614",
		PlantingDate: types.NewDate(2026, time.March, 1),
		HarvestDate:  types.NewDate(2026, time.July, 1),
	}
}

func TestServiceCreateCropDefaultsStatusAndNotifies(t *testing.T) {
	svc, evaluator, owner := newCropTestService(t)

	crop, err := svc.Create(context.Background(), owner.ID, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, enums.CropStatusPlanting, crop.Status)
	assert.Equal(t, owner.ID, crop.OwnerID)
	require.Len(t, evaluator.saved, 1)
	assert.Equal(t, crop.ID, evaluator.saved[0].ID)
}

func TestServiceCreateCropRejectsInvertedDates(t *testing.T) {
	svc, evaluator, owner := newCropTestService(t)

	req := validCreateRequest()
	req.PlantingDate = types.NewDate(2026, time.July, 1)
	req.HarvestDate = types.NewDate(2026, time.March, 1)

	_, err := svc.Create(context.Background(), owner.ID, req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Empty(t, evaluator.saved)
}

func TestServiceCreateCropRejectsMissingFields(t *testing.T) {
	svc, _, owner := newCropTestService(t)

	req := validCreateRequest()
	req.Name = "  "
	_, err := svc.Create(context.Background(), owner.ID, req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	req = validCreateRequest()
	req.Variety = ""
	_, err = svc.Create(context.Background(), owner.ID, req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceCreateCropRejectsInvalidStatus(t *testing.T) {
	svc, _, owner := newCropTestService(t)

	req := validCreateRequest()
	req.Status = enums.CropStatus("Rotting")
	_, err := svc.Create(context.Background(), owner.ID, req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceUpdateCropAppliesPartialChanges(t *testing.T) {
	svc, evaluator, owner := newCropTestService(t)

	crop, err := svc.Create(context.Background(), owner.ID, validCreateRequest())
	require.NoError(t, err)
	evaluator.saved = nil

	name := "  Sweet Maize "
	status := enums.CropStatusHarvesting
	updated, err := svc.Update(context.Background(), owner.ID, crop.ID, UpdateCropRequest{
		Name:   &name,
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sweet Maize", updated.Name)
	assert.Equal(t, enums.CropStatusHarvesting, updated.Status)
	assert.Equal(t, "Hybrid 614", updated.Variety)
	require.Len(t, evaluator.saved, 1)
}

func TestServiceUpdateCropRejectsInvertedDates(t *testing.T) {
	svc, _, owner := newCropTestService(t)

	crop, err := svc.Create(context.Background(), owner.ID, validCreateRequest())
	require.NoError(t, err)

	harvest := types.NewDate(2026, time.February, 1)
	_, err = svc.Update(context.Background(), owner.ID, crop.ID, UpdateCropRequest{HarvestDate: &harvest})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceGetCropOtherOwner(t *testing.T) {
	svc, _, owner := newCropTestService(t)

	crop, err := svc.Create(context.Background(), owner.ID, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), crop.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceDeleteCrop(t *testing.T) {
	svc, _, owner := newCropTestService(t)

	crop, err := svc.Create(context.Background(), owner.ID, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), owner.ID, crop.ID))

	_, err = svc.Get(context.Background(), owner.ID, crop.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceDeleteCropNotFound(t *testing.T) {
	svc, _, owner := newCropTestService(t)

	err := svc.Delete(context.Background(), owner.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

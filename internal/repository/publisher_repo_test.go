package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindx-ops/po-dashboard/internal/models"
	"github.com/mindx-ops/po-dashboard/internal/utils"
)

func publisherHeader() []string {
	return []string{
		models.ColPublisherID,
		models.ColPublisherCode,
		models.ColPublisherName,
		models.ColPublisherType,
		models.ColClientCode,
	}
}

func newPublisherFixture() (*fakeBackend, *PublisherRepository) {
	backend := newFakeBackend()
	backend.setTable("dim_publisher", [][]string{publisherHeader()})
	store := NewRecordStore(backend)
	return backend, NewPublisherRepository(store, "dim_publisher")
}

func TestPublisherCreateAllocatesIDs(t *testing.T) {
	_, repo := newPublisherFixture()
	ctx := context.Background()

	first := &models.Publisher{Code: "ACME", Name: "Acme Media", Type: "agency", ClientCode: "ACM"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, 1, first.ID)

	second := &models.Publisher{Name: "No Code Co"}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, 2, second.ID)

	publishers := repo.List(ctx)
	require.Len(t, publishers, 2)
	assert.Equal(t, "Acme Media", publishers[0].Name)
	assert.Equal(t, "ACM", publishers[0].ClientCode)
}

func TestPublisherCreateDuplicateCode(t *testing.T) {
	backend, repo := newPublisherFixture()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Publisher{Code: "ACME", Name: "Acme Media"}))
	before := backend.rowCount("dim_publisher")

	err := repo.Create(ctx, &models.Publisher{Code: "ACME", Name: "Impostor"})
	assert.ErrorIs(t, err, utils.ErrDuplicateCode)
	assert.Equal(t, before, backend.rowCount("dim_publisher"))
}

func TestPublisherCreateEmptyCodesNotUnique(t *testing.T) {
	_, repo := newPublisherFixture()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Publisher{Name: "First"}))
	require.NoError(t, repo.Create(ctx, &models.Publisher{Name: "Second"}))
}

func TestPublisherCodeMatchIsCaseSensitive(t *testing.T) {
	_, repo := newPublisherFixture()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Publisher{Code: "ACME", Name: "Upper"}))
	require.NoError(t, repo.Create(ctx, &models.Publisher{Code: "acme", Name: "Lower"}))
}

func TestPublisherUpdatePartial(t *testing.T) {
	_, repo := newPublisherFixture()
	ctx := context.Background()

	p := &models.Publisher{Code: "ACME", Name: "Acme Media", Type: "agency", ClientCode: "ACM"}
	require.NoError(t, repo.Create(ctx, p))

	newName := "Acme Media Group"
	require.NoError(t, repo.Update(ctx, p.ID, &UpdatePublisherParams{Name: &newName}))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Media Group", got.Name)
	assert.Equal(t, "ACME", got.Code)
	assert.Equal(t, "agency", got.Type)
	assert.Equal(t, "ACM", got.ClientCode)
}

func TestPublisherUpdateNotFound(t *testing.T) {
	_, repo := newPublisherFixture()

	name := "x"
	err := repo.Update(context.Background(), 42, &UpdatePublisherParams{Name: &name})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestPublisherGetByID(t *testing.T) {
	_, repo := newPublisherFixture()
	ctx := context.Background()

	p := &models.Publisher{Name: "Acme Media", ClientCode: "ACM"}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Media", got.Name)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

package catalog

import (
	"context"
	"testing"

	"github.com/lamuse/classtee-backend/pkg/config"
	"github.com/lamuse/classtee-backend/pkg/db"
	"github.com/lamuse/classtee-backend/pkg/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMigratedDB(t *testing.T) *db.Client {
	t.Helper()
	cfg := config.DBConfig{Driver: config.DBDriverSQLite, DSN: "file:catalog_repo?mode=memory&cache=shared", MaxOpenConns: 1}
	client, err := db.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.DB().DB()
	require.NoError(t, err)
	require.NoError(t, migrate.Run(context.Background(), sqlDB, migrate.GooseDialect(cfg), "../../pkg/migrate/migrations", "up"))
	return client
}

func TestRepositoryUpsertAndLoadRoundTrip(t *testing.T) {
	client := newMigratedDB(t)
	ctx := context.Background()
	seed := Seed()

	require.NoError(t, client.WithTx(ctx, func(tx *gorm.DB) error {
		return NewRepository(client.DB()).WithTx(tx).Upsert(ctx, seed)
	}))

	repo := NewRepository(client.DB())
	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(seed))

	for i := range seed {
		assert.Equal(t, seed[i].ID, loaded[i].ID, "display order preserved")
		assert.Equal(t, seed[i].Colors, loaded[i].Colors)
		assert.Equal(t, seed[i].Sizes, loaded[i].Sizes)
		assert.Equal(t, seed[i].Variants, loaded[i].Variants)
	}
	assert.Equal(t, 3, loaded[0].StockOf("ブルー", "XS"))

	// Re-seeding replaces stock instead of duplicating rows.
	changed, err := New(Product{
		ID:        seed[0].ID,
		Name:      seed[0].Name,
		Category:  seed[0].Category,
		BasePrice: 1000,
		Colors:    []string{"ホワイト"},
		Sizes:     []string{"M"},
		Variants:  []Variant{{Color: "ホワイト", Size: "M", Stock: 7}},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, []*Product{changed}))

	loaded, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(seed))
	assert.EqualValues(t, 1000, loaded[0].BasePrice)
	assert.Equal(t, 7, loaded[0].StockOf("ホワイト", "M"))
	assert.Len(t, loaded[0].Variants, 1)
}

package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	numberingdomain "github.com/facturio/facturio/internal/numbering/domain"
	"github.com/facturio/facturio/internal/numbering/repository"
	"github.com/facturio/facturio/internal/orgcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*gorm.DB, numberingdomain.Service, snowflake.ID) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&numberingdomain.Sequence{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.NewRepository(db),
	})

	return db, svc, node.Generate()
}

func reserve(t *testing.T, db *gorm.DB, svc numberingdomain.Service, orgID snowflake.ID, docType string, now time.Time) string {
	t.Helper()

	var number string
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		number, err = svc.Reserve(context.Background(), tx, orgID, docType, now)
		return err
	})
	require.NoError(t, err)
	return number
}

func TestReserve_Monotonic(t *testing.T) {
	db, svc, orgID := setupService(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		number := reserve(t, db, svc, orgID, "invoice", now)
		assert.Equal(t, fmt.Sprintf("FAC-%03d", i), number)
	}
}

func TestReserve_RendersConfiguredFormat(t *testing.T) {
	db, svc, orgID := setupService(t)

	seed := numberingdomain.Sequence{
		ID:            snowflake.ID(100),
		OrgID:         orgID,
		DocType:       "invoice",
		Prefix:        "FAC-",
		PaddingDigits: 3,
		NextSeq:       7,
		ResetPeriod:   numberingdomain.ResetNever,
	}
	require.NoError(t, db.Create(&seed).Error)

	number := reserve(t, db, svc, orgID, "invoice", time.Now().UTC())
	assert.Equal(t, "FAC-007", number)
}

func TestReserve_AnnualReset(t *testing.T) {
	db, svc, orgID := setupService(t)

	seed := numberingdomain.Sequence{
		ID:            snowflake.ID(101),
		OrgID:         orgID,
		DocType:       "invoice",
		Prefix:        "FAC-",
		PaddingDigits: 3,
		NextSeq:       42,
		ResetPeriod:   numberingdomain.ResetAnnually,
		LastPeriodKey: "2025",
	}
	require.NoError(t, db.Create(&seed).Error)

	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	number := reserve(t, db, svc, orgID, "invoice", now)
	assert.Equal(t, "FAC-001", number)

	// counter continues within the new period
	number = reserve(t, db, svc, orgID, "invoice", now.Add(time.Hour))
	assert.Equal(t, "FAC-002", number)
}

func TestReserve_MonthlyReset(t *testing.T) {
	db, svc, orgID := setupService(t)

	seed := numberingdomain.Sequence{
		ID:            snowflake.ID(102),
		OrgID:         orgID,
		DocType:       "quote",
		Prefix:        "DEV-",
		PaddingDigits: 4,
		NextSeq:       9,
		ResetPeriod:   numberingdomain.ResetMonthly,
		LastPeriodKey: "2026-02",
	}
	require.NoError(t, db.Create(&seed).Error)

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	number := reserve(t, db, svc, orgID, "quote", now)
	assert.Equal(t, "DEV-0001", number)
}

func TestReserve_ConcurrentCallersGetUniqueNumbers(t *testing.T) {
	db, svc, orgID := setupService(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	const callers = 10
	numbers := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Transaction(func(tx *gorm.DB) error {
				number, err := svc.Reserve(context.Background(), tx, orgID, "invoice", now)
				if err != nil {
					return err
				}
				numbers <- number
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool, callers)
	for number := range numbers {
		assert.False(t, seen[number], "duplicate number %s", number)
		seen[number] = true
	}
	assert.Len(t, seen, callers)
}

func TestPreview_DoesNotConsume(t *testing.T) {
	db, svc, orgID := setupService(t)
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	first, err := svc.Preview(ctx, "invoice")
	require.NoError(t, err)
	second, err := svc.Preview(ctx, "invoice")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "FAC-001", first)

	reserved := reserve(t, db, svc, orgID, "invoice", time.Now().UTC())
	assert.Equal(t, first, reserved)
}

func TestUpdateConfig_RejectsInvalid(t *testing.T) {
	_, svc, orgID := setupService(t)
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	bad := 13
	_, err := svc.UpdateConfig(ctx, numberingdomain.UpdateConfigRequest{
		DocType:       "invoice",
		PaddingDigits: &bad,
	})
	assert.ErrorIs(t, err, numberingdomain.ErrInvalidConfig)
}

package service

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	infraRepo "github.com/sangkips/smartventory-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func (e *testEnv) backupService(dir string, now func() time.Time) *BackupService {
	svc := NewBackupService(e.settings, e.bills, e.catalog, infraRepo.NewDataResetter(e.db), dir, zap.NewNop())
	svc.now = now
	return svc
}

func TestSettingsService_BackupSettings(t *testing.T) {
	svc := newTestEnv(t).settings
	ctx := context.Background()

	got, err := svc.GetBackupSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultBackupSettings(), *got)

	_, err = svc.UpdateBackupSettings(ctx, &entity.BackupSettings{AutoBackup: true, BackupFrequency: "hourly"})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	updated, err := svc.UpdateBackupSettings(ctx, &entity.BackupSettings{
		AutoBackup:      false,
		BackupFrequency: " Weekly ",
		LastBackup:      "2020-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BackupWeekly, updated.BackupFrequency)
	assert.Equal(t, entity.NeverBackedUp, updated.LastBackup, "last backup is not client-settable")
}

func TestBackupService_Backup(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)
	svc := env.backupService("", func() time.Time { return testNow })
	ctx := context.Background()

	snap, err := svc.Backup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Version)
	assert.Len(t, snap.Inventory, 5)
	require.Len(t, snap.Bills, 3)
	assert.Equal(t, "INV-240310-001", snap.Bills[0].BillNumber)
	assert.Equal(t, "My Business", snap.StoreSettings.StoreName)
	assert.Equal(t, "smartventory-backup-20240310-120000.json", snap.FileName())

	settings, err := env.settings.GetBackupSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10T12:00:00Z", settings.LastBackup)
}

func TestBackupService_AutoBackup(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	now := testNow
	svc := env.backupService(dir, func() time.Time { return now })
	ctx := context.Background()

	path, err := svc.AutoBackup(ctx)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "smartventory-backup-20240310-120000.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Len(t, snap.Inventory, 5)
	assert.Empty(t, snap.Bills)

	now = testNow.Add(23 * time.Hour)
	path, err = svc.AutoBackup(ctx)
	require.NoError(t, err)
	assert.Empty(t, path, "daily backup is not due yet")

	now = testNow.Add(24 * time.Hour)
	path, err = svc.AutoBackup(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = env.settings.UpdateBackupSettings(ctx, &entity.BackupSettings{AutoBackup: false, BackupFrequency: entity.BackupDaily})
	require.NoError(t, err)
	now = testNow.AddDate(0, 1, 0)
	path, err = svc.AutoBackup(ctx)
	require.NoError(t, err)
	assert.Empty(t, path, "automatic backups are off")
}

func TestBackupService_Reset(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)
	svc := env.backupService("", func() time.Time { return testNow })
	ctx := context.Background()

	in := entity.DefaultStoreSettings()
	in.StoreName = "Sharma General Store"
	_, err := env.settings.UpdateStoreSettings(ctx, &in)
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))

	n, err := env.catalog.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	bills, err := env.bills.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, bills)

	store, err := env.settings.GetStoreSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My Business", store.StoreName)
}

func TestBackupSettings_BackupDue(t *testing.T) {
	last := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		settings entity.BackupSettings
		now      time.Time
		want     bool
	}{
		{"never backed up", entity.DefaultBackupSettings(), last, true},
		{"auto backup off", entity.BackupSettings{BackupFrequency: entity.BackupDaily, LastBackup: entity.NeverBackedUp}, last, false},
		{"daily not yet", entity.BackupSettings{AutoBackup: true, BackupFrequency: entity.BackupDaily, LastBackup: last.Format(time.RFC3339)}, last.Add(time.Hour), false},
		{"daily due", entity.BackupSettings{AutoBackup: true, BackupFrequency: entity.BackupDaily, LastBackup: last.Format(time.RFC3339)}, last.AddDate(0, 0, 1), true},
		{"weekly not yet", entity.BackupSettings{AutoBackup: true, BackupFrequency: entity.BackupWeekly, LastBackup: last.Format(time.RFC3339)}, last.AddDate(0, 0, 6), false},
		{"monthly due", entity.BackupSettings{AutoBackup: true, BackupFrequency: entity.BackupMonthly, LastBackup: last.Format(time.RFC3339)}, last.AddDate(0, 1, 0), true},
		{"browser locale time", entity.BackupSettings{AutoBackup: true, BackupFrequency: entity.BackupDaily, LastBackup: "17/4/2023 10:00:00 am"}, last, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.BackupDue(tt.now))
		})
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/pkg/apperror"
	"go.uber.org/zap"
)

const snapshotVersion = 1

// BackupService exports the local data and wipes it on request
type BackupService struct {
	settings *SettingsService
	bills    repository.BillStore
	catalog  repository.CatalogRepository
	resetter repository.DataResetter
	dir      string
	log      *zap.Logger
	now      func() time.Time
}

// NewBackupService creates a new backup service. Automatic backups are
// written under dir; an empty dir disables them.
func NewBackupService(
	settings *SettingsService,
	bills repository.BillStore,
	catalog repository.CatalogRepository,
	resetter repository.DataResetter,
	dir string,
	log *zap.Logger,
) *BackupService {
	return &BackupService{
		settings: settings,
		bills:    bills,
		catalog:  catalog,
		resetter: resetter,
		dir:      dir,
		log:      log,
		now:      time.Now,
	}
}

// Snapshot is a full export of the local data
type Snapshot struct {
	Version       int                  `json:"version"`
	CreatedAt     time.Time            `json:"createdAt"`
	StoreSettings entity.StoreSettings `json:"storeSettings"`
	TaxSettings   entity.TaxSettings   `json:"taxSettings"`
	Inventory     []entity.CatalogItem `json:"inventory"`
	Bills         []entity.Bill        `json:"bills"`
}

// FileName names the file a snapshot is downloaded or written as
func (s *Snapshot) FileName() string {
	return "smartventory-backup-" + s.CreatedAt.Format("20060102-150405") + ".json"
}

// Backup takes a snapshot and records it as the last backup
func (s *BackupService) Backup(ctx context.Context) (*Snapshot, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.settings.recordBackup(ctx, snap.CreatedAt); err != nil {
		return nil, err
	}

	s.log.Info("backup created",
		zap.Int("items", len(snap.Inventory)),
		zap.Int("bills", len(snap.Bills)),
	)
	return snap, nil
}

// AutoBackup writes a snapshot to the backup directory when the backup
// settings say one is due. It returns the written path, or "" when no
// backup was due.
func (s *BackupService) AutoBackup(ctx context.Context) (string, error) {
	settings, err := s.settings.GetBackupSettings(ctx)
	if err != nil {
		return "", err
	}
	if s.dir == "" || !settings.BackupDue(s.now()) {
		return "", nil
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}
	path, err := s.write(snap)
	if err != nil {
		return "", apperror.NewInternalError("Failed to write backup", err)
	}
	if err := s.settings.recordBackup(ctx, snap.CreatedAt); err != nil {
		return "", err
	}

	s.log.Info("automatic backup written", zap.String("path", path))
	return path, nil
}

// RunAutoBackup checks for a due backup every interval until ctx is done
func (s *BackupService) RunAutoBackup(ctx context.Context, interval time.Duration) {
	if s.dir == "" || interval <= 0 {
		s.log.Info("automatic backups disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.AutoBackup(ctx); err != nil {
			s.log.Error("automatic backup failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Reset deletes every bill, catalog item and stored setting
func (s *BackupService) Reset(ctx context.Context) error {
	if err := s.resetter.Reset(ctx); err != nil {
		return apperror.NewInternalError("Failed to reset application data", err)
	}
	s.log.Warn("application data reset")
	return nil
}

func (s *BackupService) snapshot(ctx context.Context) (*Snapshot, error) {
	store, err := s.settings.GetStoreSettings(ctx)
	if err != nil {
		return nil, err
	}
	tax, err := s.settings.GetTaxSettings(ctx)
	if err != nil {
		return nil, err
	}
	items, _, err := s.catalog.List(ctx, &repository.CatalogFilterParams{})
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load items", err)
	}
	bills, err := s.bills.ListAll(ctx)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load bills", err)
	}

	snap := &Snapshot{
		Version:       snapshotVersion,
		CreatedAt:     s.now().UTC().Truncate(time.Second),
		StoreSettings: *store,
		TaxSettings:   *tax,
		Inventory:     items,
		Bills:         bills,
	}
	if snap.Inventory == nil {
		snap.Inventory = []entity.CatalogItem{}
	}
	if snap.Bills == nil {
		snap.Bills = []entity.Bill{}
	}
	return snap, nil
}

func (s *BackupService) write(snap *Snapshot) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}
	path := filepath.Join(s.dir, snap.FileName())
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Package store persists placement snapshots in SQLite through GORM.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/oriumgames/furniture"
)

// Record is the persisted form of a placement.
type Record struct {
	Base           string `gorm:"primarykey;size:36"`
	ItemID         string `gorm:"index:idx_item_id;size:128;NOT NULL"`
	X              int
	Y              int
	Z              int
	Yaw            float64
	Facing         uint8
	EvolutionStage int
	Storage        datatypes.JSON
	Disc           string `gorm:"size:128"`
	UpdatedAt      time.Time
}

// TableName returns the table records are stored in.
func (Record) TableName() string {
	return "placements"
}

// Anchor returns the anchor cell of the record.
func (r Record) Anchor() cube.Pos {
	return cube.Pos{r.X, r.Y, r.Z}
}

// Store persists placement records.
type Store struct {
	db *gorm.DB
}

// Open opens the database at path and migrates it. An empty path opens a
// private in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dsn, err)
	}
	if path == "" {
		// Every connection to ":memory:" is a new database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewRecord converts a placement snapshot to a record.
func NewRecord(p *furniture.Placement) (Record, error) {
	storage, err := json.Marshal(p.Storage)
	if err != nil {
		return Record{}, fmt.Errorf("store: encode storage of %s: %w", p.Base, err)
	}
	return Record{
		Base:           p.Base.String(),
		ItemID:         p.ItemID(),
		X:              p.Anchor.X(),
		Y:              p.Anchor.Y(),
		Z:              p.Anchor.Z(),
		Yaw:            p.Yaw,
		Facing:         uint8(p.Facing),
		EvolutionStage: p.EvolutionStage,
		Storage:        datatypes.JSON(storage),
		Disc:           p.Disc,
	}, nil
}

// Placement converts a record back to a snapshot. The snapshot can be fed to
// furniture.Restore to recreate the placement.
func (r Record) Placement(reg *furniture.Registry) (*furniture.Placement, error) {
	def, ok := reg.Definition(r.ItemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", furniture.ErrUnknownPlacement, r.ItemID)
	}
	base, err := uuid.Parse(r.Base)
	if err != nil {
		return nil, fmt.Errorf("store: record base: %w", err)
	}
	p := &furniture.Placement{
		Base:           base,
		Definition:     def,
		Anchor:         r.Anchor(),
		Yaw:            r.Yaw,
		Facing:         cube.Face(r.Facing),
		EvolutionStage: r.EvolutionStage,
		Disc:           r.Disc,
	}
	p.Position = def.SpawnPosition(p.Anchor, p.Facing)
	if len(r.Storage) > 0 {
		if err := json.Unmarshal(r.Storage, &p.Storage); err != nil {
			return nil, fmt.Errorf("store: decode storage of %s: %w", r.Base, err)
		}
	}
	return p, nil
}

// Save inserts or updates the record of a placement.
func (s *Store) Save(p *furniture.Placement) error {
	r, err := NewRecord(p)
	if err != nil {
		return err
	}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&r).Error; err != nil {
		return fmt.Errorf("store: save %s: %w", p.Base, err)
	}
	return nil
}

// Delete removes the record of a base entity.
func (s *Store) Delete(base uuid.UUID) error {
	if err := s.db.Where("base = ?", base.String()).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("store: delete %s: %w", base, err)
	}
	return nil
}

// All returns every record ordered by anchor.
func (s *Store) All() ([]Record, error) {
	var out []Record
	if err := s.db.Order("x, y, z").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return out, nil
}

// ReplaceAll replaces every record with the given placements in one
// transaction.
func (s *Store) ReplaceAll(ps []*furniture.Placement) error {
	records := make([]Record, 0, len(ps))
	for _, p := range ps {
		r, err := NewRecord(p)
		if err != nil {
			return err
		}
		records = append(records, r)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Record{}).Error; err != nil {
			return fmt.Errorf("store: clear: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("store: insert: %w", err)
		}
		return nil
	})
}

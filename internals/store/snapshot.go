package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The whole league lives in a single row.
const snapshotRowID = 1

type stateRow struct {
	ID        int       `gorm:"column:id;primaryKey"`
	Payload   string    `gorm:"column:payload;type:jsonb"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (stateRow) TableName() string { return "futsal_state" }

// Remote persists the snapshot as one JSON row in Postgres and fans saves
// out over the broker so other running instances converge.
type Remote struct {
	DB     *gorm.DB
	Fanout *Fanout
}

func NewRemote(db *gorm.DB, fanout *Fanout) (*Remote, error) {
	if err := db.AutoMigrate(&stateRow{}); err != nil {
		return nil, err
	}
	return &Remote{DB: db, Fanout: fanout}, nil
}

func (r *Remote) Load(ctx context.Context) (*Envelope, error) {
	var row stateRow
	err := r.DB.WithContext(ctx).First(&row, snapshotRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var env Envelope
	if err := json.Unmarshal([]byte(row.Payload), &env); err != nil {
		// A mangled payload reads as no remote state rather than an error.
		return nil, nil
	}
	return &env, nil
}

func (r *Remote) Save(ctx context.Context, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	row := stateRow{ID: snapshotRowID, Payload: string(payload), UpdatedAt: time.Now()}
	err = r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return err
	}
	if r.Fanout != nil {
		if err := r.Fanout.Publish(env); err != nil {
			log.Printf("fanout publish failed: %v", err)
		}
	}
	return nil
}

func (r *Remote) Subscribe(fn func(Envelope)) (func(), error) {
	if r.Fanout == nil {
		return func() {}, nil
	}
	return r.Fanout.Subscribe(fn)
}

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/JustJay7/smartlawyer/internal/watch"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CaseDAO runs the case queries.
type CaseDAO struct {
	db  *gorm.DB
	hub *watch.Hub
}

func NewCaseDAO(db *gorm.DB, hub *watch.Hub) *CaseDAO {
	return &CaseDAO{db: db, hub: hub}
}

// GetAllCases streams every case, most recent registration first.
func (d *CaseDAO) GetAllCases(ctx context.Context) *watch.Feed[Case] {
	return watch.Observe(ctx, d.hub, func(ctx context.Context) ([]Case, error) {
		var cases []Case
		err := d.db.WithContext(ctx).Order("registrationDate DESC").Find(&cases).Error
		return cases, err
	}, TableCases)
}

// GetCasesByClientID streams the cases of one client in storage order.
func (d *CaseDAO) GetCasesByClientID(ctx context.Context, clientID int64) *watch.Feed[Case] {
	return watch.Observe(ctx, d.hub, func(ctx context.Context) ([]Case, error) {
		var cases []Case
		err := d.db.WithContext(ctx).Where("clientId = ?", clientID).Order("id ASC").Find(&cases).Error
		return cases, err
	}, TableCases)
}

// SearchCases streams cases whose number or subject contains query.
func (d *CaseDAO) SearchCases(ctx context.Context, query string) *watch.Feed[Case] {
	return watch.Observe(ctx, d.hub, func(ctx context.Context) ([]Case, error) {
		var cases []Case
		err := d.db.WithContext(ctx).
			Where("instr(caseNumber, ?) > 0 OR instr(caseSubject, ?) > 0", query, query).
			Order("registrationDate DESC").
			Find(&cases).Error
		return cases, err
	}, TableCases)
}

// GetCaseByID returns nil when no case has the id.
func (d *CaseDAO) GetCaseByID(ctx context.Context, id int64) (*Case, error) {
	var c Case
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case %d: %w", id, err)
	}
	return &c, nil
}

// InsertCase stores c and sets c.ID. An id that is already taken fails with
// ErrDuplicateKey, unlike InsertCases.
func (d *CaseDAO) InsertCase(ctx context.Context, c *Case) (int64, error) {
	if err := d.db.WithContext(ctx).Create(c).Error; err != nil {
		return 0, classify(TableCases, err)
	}
	d.hub.Publish(TableCases)
	return c.ID, nil
}

// InsertCases stores all cases in one transaction, replacing rows whose id
// already exists. Either every row is written or none is.
func (d *CaseDAO) InsertCases(ctx context.Context, cases []Case) ([]int64, error) {
	if len(cases) == 0 {
		return []int64{}, nil
	}

	original := make([]int64, len(cases))
	for i := range cases {
		original[i] = cases[i].ID
	}

	ids := make([]int64, 0, len(cases))
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range cases {
			if err := tx.Clauses(clause.Insert{Modifier: "OR REPLACE"}).Create(&cases[i]).Error; err != nil {
				return err
			}
			ids = append(ids, cases[i].ID)
		}
		return nil
	})
	if err != nil {
		for i := range cases {
			cases[i].ID = original[i]
		}
		return nil, classify(TableCases, err)
	}

	d.hub.Publish(TableCases)
	return ids, nil
}

// UpdateCase replaces every column of the row with c.ID.
func (d *CaseDAO) UpdateCase(ctx context.Context, c *Case) (int64, error) {
	if c.ID == 0 {
		return 0, nil
	}
	res := d.db.WithContext(ctx).Model(c).Select("*").Omit("id").Updates(c)
	if res.Error != nil {
		return 0, classify(TableCases, res.Error)
	}
	if res.RowsAffected > 0 {
		d.hub.Publish(TableCases)
	}
	return res.RowsAffected, nil
}

func (d *CaseDAO) DeleteCase(ctx context.Context, c *Case) (int64, error) {
	return d.DeleteCases(ctx, []Case{*c})
}

// DeleteCases removes the given cases by id in one transaction.
func (d *CaseDAO) DeleteCases(ctx context.Context, cases []Case) (int64, error) {
	ids := make([]int64, 0, len(cases))
	for _, c := range cases {
		if c.ID != 0 {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var affected int64
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ?", ids).Delete(&Case{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, classify(TableCases, err)
	}

	if affected > 0 {
		d.hub.Publish(TableCases)
	}
	return affected, nil
}

func (d *CaseDAO) GetCaseCount(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&Case{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cases: %w", err)
	}
	return count, nil
}

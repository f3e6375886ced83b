package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/JustJay7/smartlawyer/internal/watch"
	"gorm.io/gorm"
)

// ClientDAO runs the client queries. List queries return feeds that refresh
// after every committed change to the clients table.
type ClientDAO struct {
	db  *gorm.DB
	hub *watch.Hub
}

func NewClientDAO(db *gorm.DB, hub *watch.Hub) *ClientDAO {
	return &ClientDAO{db: db, hub: hub}
}

// GetAllClients streams every client ordered by name.
func (d *ClientDAO) GetAllClients(ctx context.Context) *watch.Feed[Client] {
	return watch.Observe(ctx, d.hub, func(ctx context.Context) ([]Client, error) {
		var clients []Client
		err := d.db.WithContext(ctx).Order("name ASC").Find(&clients).Error
		return clients, err
	}, TableClients)
}

// SearchClients streams clients whose name or phone number contains query.
func (d *ClientDAO) SearchClients(ctx context.Context, query string) *watch.Feed[Client] {
	return watch.Observe(ctx, d.hub, func(ctx context.Context) ([]Client, error) {
		var clients []Client
		err := d.db.WithContext(ctx).
			Where("instr(name, ?) > 0 OR instr(phoneNumber, ?) > 0", query, query).
			Order("name ASC").
			Find(&clients).Error
		return clients, err
	}, TableClients)
}

// GetClientByID returns nil when no client has the id.
func (d *ClientDAO) GetClientByID(ctx context.Context, id int64) (*Client, error) {
	var client Client
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client %d: %w", id, err)
	}
	return &client, nil
}

// InsertClient stores c, sets c.ID and returns it.
func (d *ClientDAO) InsertClient(ctx context.Context, c *Client) (int64, error) {
	if err := d.db.WithContext(ctx).Create(c).Error; err != nil {
		return 0, classify(TableClients, err)
	}
	d.hub.Publish(TableClients)
	return c.ID, nil
}

// UpdateClient replaces every column of the row with c.ID. A missing row is
// reported as zero rows affected.
func (d *ClientDAO) UpdateClient(ctx context.Context, c *Client) (int64, error) {
	if c.ID == 0 {
		return 0, nil
	}
	res := d.db.WithContext(ctx).Model(c).Select("*").Omit("id").Updates(c)
	if res.Error != nil {
		return 0, classify(TableClients, res.Error)
	}
	if res.RowsAffected > 0 {
		d.hub.Publish(TableClients)
	}
	return res.RowsAffected, nil
}

// DeleteClient removes the row with c.ID together with all of its cases.
func (d *ClientDAO) DeleteClient(ctx context.Context, c *Client) (int64, error) {
	if c.ID == 0 {
		return 0, nil
	}
	res := d.db.WithContext(ctx).Where("id = ?", c.ID).Delete(&Client{})
	if res.Error != nil {
		return 0, classify(TableClients, res.Error)
	}
	if res.RowsAffected > 0 {
		d.hub.Publish(TableClients, TableCases)
	}
	return res.RowsAffected, nil
}

func (d *ClientDAO) GetClientCount(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&Client{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}

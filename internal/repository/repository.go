// Package repository is the seam between callers and storage. It only
// delegates; swapping the store implementation does not change behavior.
package repository

import (
	"context"

	"github.com/JustJay7/smartlawyer/internal/database"
	"github.com/JustJay7/smartlawyer/internal/watch"
)

// ClientStore is the client data-access contract.
type ClientStore interface {
	GetAllClients(ctx context.Context) *watch.Feed[database.Client]
	GetClientByID(ctx context.Context, id int64) (*database.Client, error)
	SearchClients(ctx context.Context, query string) *watch.Feed[database.Client]
	InsertClient(ctx context.Context, c *database.Client) (int64, error)
	UpdateClient(ctx context.Context, c *database.Client) (int64, error)
	DeleteClient(ctx context.Context, c *database.Client) (int64, error)
	GetClientCount(ctx context.Context) (int64, error)
}

// CaseStore is the case data-access contract.
type CaseStore interface {
	GetAllCases(ctx context.Context) *watch.Feed[database.Case]
	GetCaseByID(ctx context.Context, id int64) (*database.Case, error)
	GetCasesByClientID(ctx context.Context, clientID int64) *watch.Feed[database.Case]
	SearchCases(ctx context.Context, query string) *watch.Feed[database.Case]
	InsertCase(ctx context.Context, c *database.Case) (int64, error)
	InsertCases(ctx context.Context, cases []database.Case) ([]int64, error)
	UpdateCase(ctx context.Context, c *database.Case) (int64, error)
	DeleteCase(ctx context.Context, c *database.Case) (int64, error)
	DeleteCases(ctx context.Context, cases []database.Case) (int64, error)
	GetCaseCount(ctx context.Context) (int64, error)
}

var (
	_ ClientStore = (*database.ClientDAO)(nil)
	_ CaseStore   = (*database.CaseDAO)(nil)
)

type ClientRepository struct {
	store ClientStore
}

func NewClientRepository(store ClientStore) *ClientRepository {
	return &ClientRepository{store: store}
}

func (r *ClientRepository) GetAllClients(ctx context.Context) *watch.Feed[database.Client] {
	return r.store.GetAllClients(ctx)
}

func (r *ClientRepository) GetClientByID(ctx context.Context, id int64) (*database.Client, error) {
	return r.store.GetClientByID(ctx, id)
}

func (r *ClientRepository) SearchClients(ctx context.Context, query string) *watch.Feed[database.Client] {
	return r.store.SearchClients(ctx, query)
}

func (r *ClientRepository) InsertClient(ctx context.Context, c *database.Client) (int64, error) {
	return r.store.InsertClient(ctx, c)
}

func (r *ClientRepository) UpdateClient(ctx context.Context, c *database.Client) (int64, error) {
	return r.store.UpdateClient(ctx, c)
}

func (r *ClientRepository) DeleteClient(ctx context.Context, c *database.Client) (int64, error) {
	return r.store.DeleteClient(ctx, c)
}

func (r *ClientRepository) GetClientCount(ctx context.Context) (int64, error) {
	return r.store.GetClientCount(ctx)
}

type CaseRepository struct {
	store CaseStore
}

func NewCaseRepository(store CaseStore) *CaseRepository {
	return &CaseRepository{store: store}
}

func (r *CaseRepository) GetAllCases(ctx context.Context) *watch.Feed[database.Case] {
	return r.store.GetAllCases(ctx)
}

func (r *CaseRepository) GetCaseByID(ctx context.Context, id int64) (*database.Case, error) {
	return r.store.GetCaseByID(ctx, id)
}

func (r *CaseRepository) GetCasesByClientID(ctx context.Context, clientID int64) *watch.Feed[database.Case] {
	return r.store.GetCasesByClientID(ctx, clientID)
}

func (r *CaseRepository) SearchCases(ctx context.Context, query string) *watch.Feed[database.Case] {
	return r.store.SearchCases(ctx, query)
}

func (r *CaseRepository) InsertCase(ctx context.Context, c *database.Case) (int64, error) {
	return r.store.InsertCase(ctx, c)
}

func (r *CaseRepository) InsertCases(ctx context.Context, cases []database.Case) ([]int64, error) {
	return r.store.InsertCases(ctx, cases)
}

func (r *CaseRepository) UpdateCase(ctx context.Context, c *database.Case) (int64, error) {
	return r.store.UpdateCase(ctx, c)
}

func (r *CaseRepository) DeleteCase(ctx context.Context, c *database.Case) (int64, error) {
	return r.store.DeleteCase(ctx, c)
}

func (r *CaseRepository) DeleteCases(ctx context.Context, cases []database.Case) (int64, error) {
	return r.store.DeleteCases(ctx, cases)
}

func (r *CaseRepository) GetCaseCount(ctx context.Context) (int64, error) {
	return r.store.GetCaseCount(ctx)
}

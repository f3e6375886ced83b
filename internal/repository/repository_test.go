package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/JustJay7/smartlawyer/internal/database"
	"github.com/JustJay7/smartlawyer/internal/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingCases embeds the contract so only the method under test is defined.
type failingCases struct {
	CaseStore
	err error
}

func (f failingCases) InsertCase(context.Context, *database.Case) (int64, error) {
	return 0, f.err
}

func TestCaseRepositoryPropagatesErrorsUnchanged(t *testing.T) {
	want := &database.ConstraintError{Kind: database.ErrForeignKey, Table: database.TableCases, Err: errors.New("driver")}
	repo := NewCaseRepository(failingCases{err: want})

	_, err := repo.InsertCase(context.Background(), &database.Case{})
	assert.Same(t, want, err)
}

func TestRepositoriesDelegateToDAOs(t *testing.T) {
	db, err := database.Initialize(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	hub := watch.NewHub()
	clients := NewClientRepository(database.NewClientDAO(db, hub))
	cases := NewCaseRepository(database.NewCaseDAO(db, hub))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &database.Client{Name: "Nour", PhoneNumber: "01000000000", Documents: "[]", Images: "[]"}
	id, err := clients.InsertClient(ctx, client)
	require.NoError(t, err)

	ids, err := cases.InsertCases(ctx, []database.Case{
		{CaseNumber: "1", CaseYear: "2024", RegistrationDate: "2024-01-01", ClientID: id},
	})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	feed := cases.GetCasesByClientID(ctx, id)
	select {
	case rows := <-feed.C:
		require.Len(t, rows, 1)
		assert.Equal(t, ids[0], rows[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot")
	}

	n, err := clients.GetClientCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

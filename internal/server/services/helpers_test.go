package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/dmitrijs2005/dramahub/internal/server/models"
	"github.com/dmitrijs2005/dramahub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dramahub/internal/server/storetest"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db      *sql.DB
	users   *UserService
	members *MembershipService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := storetest.NewSQLite(t)
	rm := repomanager.NewSQLiteRepositoryManager()
	log := logging.NewNop()
	return &fixture{
		db:      db,
		users:   NewUserService(db, rm, log),
		members: NewMembershipService(db, rm, log),
	}
}

func (f *fixture) signUp(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.users.SignUp(context.Background(), "Test User", email, "secret1")
	require.NoError(t, err)
	return u
}

// fakeCatalog returns {"id":N} for every id, or err for ids in fail.
type fakeCatalog struct {
	mu    sync.Mutex
	seen  []int64
	calls atomic.Int32
	fail  map[int64]error
}

func (c *fakeCatalog) GetItem(ctx context.Context, id int64) (json.RawMessage, error) {
	c.calls.Add(1)
	c.mu.Lock()
	c.seen = append(c.seen, id)
	c.mu.Unlock()

	if err, ok := c.fail[id]; ok {
		return nil, err
	}
	return json.RawMessage(fmt.Sprintf(`{"id":%d}`, id)), nil
}

type fakeTextGen struct {
	prompt string
	reply  string
	err    error
}

func (g *fakeTextGen) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

var errUpstream = errors.New("upstream returned 500")

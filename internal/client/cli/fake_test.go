package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dmitrijs2005/dramahub/internal/client/api"
	"github.com/dmitrijs2005/dramahub/internal/client/config"
	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/goccy/go-json"
)

type fakeAPI struct {
	pingErr error

	signUpName, signUpEmail string
	signUpPass              []byte
	loginEmail              string
	loginPass               []byte
	user                    *api.User
	err                     error

	pwCurrent, pwNext, pwConfirm []byte
	deletedID                    int64

	sets    map[api.Set][]int64
	docs    []json.RawMessage
	prefs   api.Preferences
	rec     *api.Recommendation
	lastSet api.Set
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{sets: map[api.Set][]int64{}}
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

func (f *fakeAPI) SignUp(_ context.Context, name, email string, pw []byte) (*api.User, error) {
	f.signUpName, f.signUpEmail, f.signUpPass = name, email, append([]byte(nil), pw...)
	if f.err != nil {
		return nil, f.err
	}
	return &api.User{ID: 1, Name: name, Email: email, Favorites: []int64{}, Watchlist: []int64{}}, nil
}

func (f *fakeAPI) Login(_ context.Context, email string, pw []byte) (*api.User, error) {
	f.loginEmail, f.loginPass = email, append([]byte(nil), pw...)
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAPI) ChangePassword(_ context.Context, _ int64, current, next, confirm []byte) error {
	f.pwCurrent = append([]byte(nil), current...)
	f.pwNext = append([]byte(nil), next...)
	f.pwConfirm = append([]byte(nil), confirm...)
	return f.err
}

func (f *fakeAPI) DeleteUser(_ context.Context, id int64) error {
	f.deletedID = id
	return f.err
}

func (f *fakeAPI) Add(_ context.Context, set api.Set, _, item int64) ([]int64, error) {
	f.lastSet = set
	for _, id := range f.sets[set] {
		if id == item {
			return f.sets[set], f.err
		}
	}
	f.sets[set] = append(f.sets[set], item)
	return f.sets[set], f.err
}

func (f *fakeAPI) Remove(_ context.Context, set api.Set, _, item int64) ([]int64, error) {
	f.lastSet = set
	out := f.sets[set][:0]
	for _, id := range f.sets[set] {
		if id != item {
			out = append(out, id)
		}
	}
	f.sets[set] = out
	return out, f.err
}

func (f *fakeAPI) List(_ context.Context, set api.Set, _ int64) ([]int64, error) {
	f.lastSet = set
	return f.sets[set], f.err
}

func (f *fakeAPI) Details(_ context.Context, set api.Set, _ int64) ([]json.RawMessage, error) {
	f.lastSet = set
	return f.docs, f.err
}

func (f *fakeAPI) Recommend(_ context.Context, p api.Preferences) (*api.Recommendation, error) {
	f.prefs = p
	return f.rec, f.err
}

// newTestApp returns an App on the fake API writing to a buffer.
func newTestApp(f *fakeAPI) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		config: &config.Config{ServerURL: "http://test"},
		api:    f,
		reader: bufio.NewReader(strings.NewReader("")),
		out:    &out,
		logger: logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, &out
}

// stubPrompts feeds answers to getSimpleText/getYesNo in order and
// passwords to getPassword in order.
func stubPrompts(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP, origYN := getSimpleText, getPassword, getYesNo

	ti, pi := 0, 0
	nextText := func() string {
		if ti >= len(texts) {
			t.Fatalf("unexpected text prompt #%d", ti)
		}
		ti++
		return texts[ti-1]
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return nextText(), nil }
	getYesNo = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) {
		v := nextText()
		return v == "y" || v == "yes", nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if pi >= len(passwords) {
			t.Fatalf("unexpected password prompt #%d", pi)
		}
		pi++
		return []byte(passwords[pi-1]), nil
	}

	t.Cleanup(func() {
		getSimpleText, getPassword, getYesNo = origST, origGP, origYN
	})
}

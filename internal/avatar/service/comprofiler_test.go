package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kunena/forumadmin/internal/avatar/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	profiles     map[int64]model.Profile
	preloadErr   error
	profileErr   error
	fieldErr     error
	preloadCalls [][]int64
	profileCalls []int64
	fieldCalls   []model.FieldOptions
}

func newFakeClient(ids ...int64) *fakeClient {
	f := &fakeClient{profiles: map[int64]model.Profile{}}
	for _, id := range ids {
		f.profiles[id] = model.Profile{ID: id, Username: "user"}
	}
	return f
}

func (f *fakeClient) Preload(ctx context.Context, userIDs []int64) ([]model.Profile, error) {
	f.preloadCalls = append(f.preloadCalls, userIDs)
	if f.preloadErr != nil {
		return nil, f.preloadErr
	}
	var out []model.Profile
	for _, id := range userIDs {
		if p, ok := f.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeClient) EditURL(ctx context.Context) (string, error) {
	return "https://forum.example/cb/edit", nil
}

func (f *fakeClient) Profile(ctx context.Context, userID int64) (*model.Profile, bool, error) {
	f.profileCalls = append(f.profileCalls, userID)
	if f.profileErr != nil {
		return nil, false, f.profileErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (f *fakeClient) Field(ctx context.Context, userID int64, field string, opts model.FieldOptions) (string, error) {
	f.fieldCalls = append(f.fieldCalls, opts)
	if f.fieldErr != nil {
		return "", f.fieldErr
	}
	if opts.Format == "list" {
		return "images/comprofiler/full.png", nil
	}
	return "images/comprofiler/tn.png", nil
}

const tmpl = "components/com_comprofiler/plugin/templates/default/"

func newComprofiler(t *testing.T, client ProfileClient, cache ProfileCache) Provider {
	t.Helper()
	p, err := NewProvider(BackendComprofiler, Options{TemplatePath: tmpl, Client: client, Cache: cache})
	require.NoError(t, err)
	return p
}

func TestComprofilerProvider_URL_Fallback(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	p := newComprofiler(t, client, nil)

	assert.Equal(t, tmpl+"images/avatar/tnnophoto_n.png", p.URL(ctx, model.User{ID: 5}, 100, 100))
	assert.Equal(t, tmpl+"images/avatar/tnnophoto_n.png", p.URL(ctx, model.User{ID: 5}, 144, 144))
	assert.Equal(t, tmpl+"images/avatar/nophoto_n.png", p.URL(ctx, model.User{ID: 5}, 200, 200))
	assert.Empty(t, client.fieldCalls)
}

func TestComprofilerProvider_URL_Guest(t *testing.T) {
	client := newFakeClient(0)
	p := newComprofiler(t, client, nil)

	assert.Equal(t, tmpl+"images/avatar/nophoto_n.png", p.URL(context.Background(), model.User{}, 145, 145))
	assert.Empty(t, client.profileCalls)
}

func TestComprofilerProvider_URL_Profile(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient(42)
	p := newComprofiler(t, client, nil)

	assert.Equal(t, "images/comprofiler/tn.png", p.URL(ctx, model.User{ID: 42}, 144, 144))
	assert.Equal(t, "images/comprofiler/full.png", p.URL(ctx, model.User{ID: 42}, 145, 145))
	require.Len(t, client.fieldCalls, 2)
	assert.Equal(t, model.FieldOptions{Reason: "csv"}, client.fieldCalls[0])
	assert.Equal(t, model.FieldOptions{Reason: "csv", Output: "none", Format: "list"}, client.fieldCalls[1])
}

func TestComprofilerProvider_URL_ErrorsDegrade(t *testing.T) {
	ctx := context.Background()

	client := newFakeClient(42)
	client.profileErr = errors.New("timeout")
	p := newComprofiler(t, client, nil)
	assert.Equal(t, tmpl+"images/avatar/tnnophoto_n.png", p.URL(ctx, model.User{ID: 42}, 64, 64))

	client = newFakeClient(42)
	client.fieldErr = errors.New("bad gateway")
	p = newComprofiler(t, client, nil)
	assert.Equal(t, tmpl+"images/avatar/nophoto_n.png", p.URL(ctx, model.User{ID: 42}, 300, 300))
}

func TestComprofilerProvider_Load(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient(1, 2)
	cache := NewMemoryCache(0)
	p := newComprofiler(t, client, cache)

	p.Load(ctx, []int64{1, 2, 2, 0, 3})
	require.Len(t, client.preloadCalls, 1)
	assert.Equal(t, []int64{1, 2, 3}, client.preloadCalls[0])

	// preloaded users are served from the cache
	p.URL(ctx, model.User{ID: 1}, 50, 50)
	p.URL(ctx, model.User{ID: 2}, 50, 50)
	assert.Empty(t, client.profileCalls)

	// already cached users are not requested again
	p.Load(ctx, []int64{1, 2})
	assert.Len(t, client.preloadCalls, 1)
}

func TestComprofilerProvider_Load_ErrorSwallowed(t *testing.T) {
	client := newFakeClient(1)
	client.preloadErr = errors.New("down")
	p := newComprofiler(t, client, NewMemoryCache(0))

	assert.NotPanics(t, func() { p.Load(context.Background(), []int64{1}) })
}

func TestComprofilerProvider_EditURL(t *testing.T) {
	p := newComprofiler(t, newFakeClient(), nil)
	u, err := p.EditURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://forum.example/cb/edit", u)

	unconfigured := newComprofiler(t, nil, nil)
	_, err = unconfigured.EditURL(context.Background())
	assert.True(t, errors.Is(err, model.ErrProfileServiceUnavailable))
	assert.Equal(t, tmpl+"images/avatar/nophoto_n.png", unconfigured.URL(context.Background(), model.User{ID: 9}, 200, 200))
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(BackendNone, Options{TemplatePath: tmpl, ThumbnailMaxWidth: 64})
	require.NoError(t, err)
	assert.Equal(t, BackendNone, p.Name())
	assert.Equal(t, tmpl+"images/avatar/nophoto_n.png", p.URL(context.Background(), model.User{ID: 1}, 100, 100))
	assert.Equal(t, tmpl+"images/avatar/tnnophoto_n.png", p.URL(context.Background(), model.User{ID: 1}, 64, 64))

	_, err = NewProvider("gravatar", Options{})
	assert.True(t, errors.Is(err, model.ErrUnknownBackend))
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, model.Profile{ID: 1, Username: "bob"}))
	p, ok := c.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, "bob", p.Username)
}

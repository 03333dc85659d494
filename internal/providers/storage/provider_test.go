package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/drivy/backend/internal/domain/storage"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

func path(s string) *string { return &s }

func newProvider(src storage.Source) *Provider {
	return New(storage.NewResolver(src, nil), "")
}

func TestGetStoragePaths(t *testing.T) {
	p := newProvider(storage.NewStaticSource(storage.FromPaths(
		path("/storage/emulated/0/Android/data/app/files"),
		nil,
		path("/storage/emulated/0/Android/data/app/files"),
		path("/storage/1234-5678/Android/data/app/files"),
	)...))

	result := p.Handle(context.Background(), types.MethodCall{Method: MethodGetStoragePaths})

	require.True(t, result.IsSuccess())
	assert.Equal(t, []string{"/storage/emulated/0", "/storage/1234-5678"}, result.Value)
}

func TestGetStoragePathsNoVolumes(t *testing.T) {
	p := newProvider(storage.NewStaticSource(nil, nil))

	result := p.Handle(context.Background(), types.MethodCall{Method: MethodGetStoragePaths})

	require.True(t, result.IsSuccess())
	assert.Equal(t, []string{}, result.Value)
}

func TestGetStoragePathsIgnoresArguments(t *testing.T) {
	p := newProvider(storage.NewStaticSource(&storage.Dir{Path: "/storage/emulated/0/Android/data/x/files"}))

	result := p.Handle(context.Background(), types.MethodCall{
		Method:    MethodGetStoragePaths,
		Arguments: map[string]interface{}{"unused": true},
	})

	require.True(t, result.IsSuccess())
	assert.Equal(t, []string{"/storage/emulated/0"}, result.Value)
}

func TestGetStoragePathsNeverErrors(t *testing.T) {
	p := newProvider(storage.SourceFunc(func(ctx context.Context) ([]*storage.Dir, error) {
		return nil, errors.New("host query failed")
	}))

	result := p.Handle(context.Background(), types.MethodCall{Method: MethodGetStoragePaths})

	assert.True(t, result.IsSuccess())
	assert.Equal(t, []string{}, result.Value)
}

func TestUnknownMethodNotImplemented(t *testing.T) {
	p := newProvider(storage.NewStaticSource())

	for _, method := range []string{"getStoragePath", "", "GETSTORAGEPATHS"} {
		result := p.Handle(context.Background(), types.MethodCall{Method: method})
		assert.True(t, result.IsNotImplemented(), "method %q", method)
		assert.Nil(t, result.Error)
	}
}

func TestDefinition(t *testing.T) {
	def := newProvider(storage.NewStaticSource()).Definition()
	assert.Equal(t, DefaultChannel, def.Name)
	assert.Equal(t, types.CategoryStorage, def.Category)
	assert.True(t, def.HasMethod(MethodGetStoragePaths))

	custom := New(storage.NewResolver(storage.NewStaticSource(), nil), "other/storage")
	assert.Equal(t, "other/storage", custom.Definition().Name)
}

func TestDecodePaths(t *testing.T) {
	roots, err := DecodePaths(types.Success([]interface{}{"/storage/emulated/0", "/storage/1234-5678"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"/storage/emulated/0", "/storage/1234-5678"}, roots)

	roots, err = DecodePaths(types.Success([]string{}))
	require.NoError(t, err)
	assert.Empty(t, roots)

	_, err = DecodePaths(types.NotImplemented())
	assert.Error(t, err)
	_, err = DecodePaths(types.Success([]interface{}{1.0}))
	assert.Error(t, err)
	_, err = DecodePaths(types.Success("nope"))
	assert.Error(t, err)
	_, err = DecodePaths(nil)
	assert.Error(t, err)
}

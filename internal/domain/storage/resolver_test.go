package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/monitoring"
)

func strp(s string) *string { return &s }

func TestResolveScenario(t *testing.T) {
	src := NewStaticSource(FromPaths(
		strp("/storage/emulated/0/Android/data/app/files"),
		nil,
		strp("/storage/emulated/0/Android/data/app/files"),
		strp("/storage/1234-5678/Android/data/app/files"),
	)...)

	got := NewResolver(src, nil).Resolve(context.Background())

	want := []string{"/storage/emulated/0", "/storage/1234-5678"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestMountRoots(t *testing.T) {
	tests := []struct {
		name        string
		dirs        []*Dir
		wantRoots   []string
		wantSkipped int
	}{
		{
			name:      "truncates at marker",
			dirs:      []*Dir{{Path: "/storage/emulated/0/Android/data/com.example.drivy/files"}},
			wantRoots: []string{"/storage/emulated/0"},
		},
		{
			name:      "empty input",
			dirs:      nil,
			wantRoots: []string{},
		},
		{
			name:        "only absent entries",
			dirs:        []*Dir{nil, nil},
			wantRoots:   []string{},
			wantSkipped: 2,
		},
		{
			name: "absent entries interleaved",
			dirs: []*Dir{
				nil,
				{Path: "/storage/A/Android/data/x/files"},
				nil,
				{Path: "/storage/B/Android/data/x/files"},
				nil,
			},
			wantRoots:   []string{"/storage/A", "/storage/B"},
			wantSkipped: 3,
		},
		{
			name: "first occurrence keeps its position",
			dirs: []*Dir{
				{Path: "/storage/B/Android/data/x/files"},
				{Path: "/storage/A/Android/data/x/files"},
				{Path: "/storage/B/Android/data/y/cache"},
				{Path: "/storage/C/Android/data/x/files"},
				{Path: "/storage/A/Android/obb/x"},
			},
			wantRoots: []string{"/storage/B", "/storage/A", "/storage/C"},
		},
		{
			name:      "path without marker kept whole",
			dirs:      []*Dir{{Path: "/mnt/usb0/files"}},
			wantRoots: []string{"/mnt/usb0/files"},
		},
		{
			name:        "empty path counts as absent",
			dirs:        []*Dir{{Path: ""}, {Path: "/storage/A/Android"}},
			wantRoots:   []string{"/storage/A"},
			wantSkipped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, skipped := MountRoots(tt.dirs, "/Android")
			if diff := cmp.Diff(tt.wantRoots, roots); diff != "" {
				t.Errorf("roots mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantSkipped, skipped)
		})
	}
}

func TestMountRootsNeverDuplicates(t *testing.T) {
	var dirs []*Dir
	for i := 0; i < 200; i++ {
		if i%7 == 0 {
			dirs = append(dirs, nil)
			continue
		}
		dirs = append(dirs, &Dir{Path: fmt.Sprintf("/storage/vol%d/Android/data/app%d/files", i%5, i)})
	}

	roots, _ := MountRoots(dirs, "/Android")

	seen := make(map[string]bool)
	for _, r := range roots {
		require.False(t, seen[r], "duplicate root %s", r)
		seen[r] = true
	}
	assert.Len(t, roots, 5)
	assert.Equal(t, "/storage/vol1", roots[0])
}

func TestResolveIsDeterministic(t *testing.T) {
	src := NewStaticSource(
		&Dir{Path: "/storage/emulated/0/Android/data/app/files"},
		&Dir{Path: "/storage/1234-5678/Android/data/app/files"},
	)
	r := NewResolver(src, nil)

	first := r.Resolve(context.Background())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Resolve(context.Background()))
	}
}

func TestResolveEmptyIsNotNil(t *testing.T) {
	got := NewResolver(NewStaticSource(), nil).Resolve(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolveSwallowsSourceErrors(t *testing.T) {
	metrics := monitoring.New(prometheus.NewRegistry())
	src := SourceFunc(func(ctx context.Context) ([]*Dir, error) {
		return []*Dir{{Path: "/storage/emulated/0/Android/data/app/files"}, nil}, errors.New("permission denied")
	})

	got := NewResolver(src, nil).WithMetrics(metrics).Resolve(context.Background())

	assert.Equal(t, []string{"/storage/emulated/0"}, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SourceErrors.WithLabelValues("func")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.MountRoots))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CandidatesSkipped))
}

func TestResolveSourceFailsCompletely(t *testing.T) {
	src := SourceFunc(func(ctx context.Context) ([]*Dir, error) {
		return nil, errors.New("no host")
	})

	got := NewResolver(src, nil).Resolve(context.Background())
	assert.Equal(t, []string{}, got)
}

func TestWithMarker(t *testing.T) {
	src := NewStaticSource(&Dir{Path: "/media/card/.app/files"})

	r := NewResolver(src, nil).WithMarker("/.app")
	assert.Equal(t, "/.app", r.Marker())
	assert.Equal(t, []string{"/media/card"}, r.Resolve(context.Background()))

	r.WithMarker("")
	assert.Equal(t, "/.app", r.Marker(), "empty marker is ignored")
}

func TestStaticSourceReturnsCopy(t *testing.T) {
	src := NewStaticSource(&Dir{Path: "/a"})
	dirs, err := src.ExternalDirs(context.Background())
	require.NoError(t, err)
	dirs[0] = nil

	again, _ := src.ExternalDirs(context.Background())
	assert.NotNil(t, again[0])
}

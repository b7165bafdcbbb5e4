package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/chordviz/pkg/cache"
)

func TestNewCache(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	ctx := context.Background()

	c := New(io.Discard, LogInfo)
	got, err := c.newCache(ctx)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	fc, ok := got.(*cache.FileCache)
	if !ok {
		t.Fatalf("default cache is %T, want *cache.FileCache", got)
	}
	if want := filepath.Join(xdg, appName); fc.Dir() != want {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), want)
	}

	c.cacheURL = "none"
	if got, err := c.newCache(ctx); err != nil {
		t.Fatalf("newCache(none): %v", err)
	} else if _, ok := got.(*cache.NullCache); !ok {
		t.Errorf("--cache-url none gives %T", got)
	}

	c.cacheURL = ""
	c.noCache = true
	if got, _ := c.newCache(ctx); got == nil {
		t.Fatal("--no-cache gave nil")
	} else if _, ok := got.(*cache.NullCache); !ok {
		t.Errorf("--no-cache gives %T", got)
	}
}

func TestCacheClearCommand(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	fc, err := cache.NewFileCache(filepath.Join(xdg, appName))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"layout:one", "artifact:two"} {
		if err := fc.Set(ctx, key, []byte("{}"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, hit, _ := fc.Get(ctx, "layout:one"); hit {
		t.Error("entry survived cache clear")
	}
}

package i18n

import (
	"errors"
	"sync"
	"testing"
)

func newTestLocalizer(t *testing.T) *Localizer {
	t.Helper()
	r, err := NewResolver("en-US")
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return New(r, exampleCatalog(t))
}

func TestLocalizerLocalize(t *testing.T) {
	t.Parallel()

	l := newTestLocalizer(t)
	got, err := l.Localize("en-GB", "greeting", Args{"name": "Ann"})
	if err != nil || got != "Hi Ann" {
		t.Fatalf("localize = %q, %v, want Hi Ann", got, err)
	}
	if _, err := l.Localize("en-GB", "greeting", nil); !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("err = %v, want ErrMissingArgument", err)
	}
	if _, err := l.Localize("en-GB", "missing", nil); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("err = %v, want ErrKeyNotFound", err)
	}
}

func TestLocalizerT(t *testing.T) {
	t.Parallel()

	l := newTestLocalizer(t)
	if got := l.T("en-US", "greeting", Args{"name": "Bo"}); got != "Hello, Bo!" {
		t.Fatalf("T = %q", got)
	}
	if got := l.T("en-US", "missing.key", nil); got != "missing.key" {
		t.Fatalf("T = %q, want raw key", got)
	}
	if got := l.T("en-US", "greeting", nil); got != "Hello, {name}!" {
		t.Fatalf("T = %q, want unformatted template", got)
	}
	if got := l.T("en-US", "", nil); got != "" {
		t.Fatalf("T = %q, want empty", got)
	}
}

func TestLocalizerGetOrDefault(t *testing.T) {
	t.Parallel()

	l := newTestLocalizer(t)
	if got := l.GetOrDefault("farewell", "en-US", "x"); got != "Bye" {
		t.Fatalf("GetOrDefault = %q, want Bye", got)
	}
	if got := l.GetOrDefault("missing", "en-US", "x"); got != "x" {
		t.Fatalf("GetOrDefault = %q, want x", got)
	}
}

func TestLocalizerReload(t *testing.T) {
	t.Parallel()

	l := newTestLocalizer(t)
	before := l.Catalog()

	err := l.Reload(Resource{Locale: "en", Entries: []Entry{{Key: "k", Value: "1"}, {Key: "k", Value: "2"}}})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}
	if l.Catalog() != before {
		t.Fatal("failed reload replaced the catalog")
	}

	if err := l.Reload(Resource{Locale: "en-US", Entries: []Entry{{Key: "fresh", Value: "new {x}"}}}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := l.Resolve("en-US", "fresh")
	if err != nil || got != "new {x}" {
		t.Fatalf("resolve fresh = %q, %v", got, err)
	}
	if _, err := l.Resolve("en-US", "greeting"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("err = %v, want old keys gone after reload", err)
	}
	if before.Len() != 3 {
		t.Fatalf("old catalog len = %d, want untouched 3", before.Len())
	}
}

func TestLocalizerConcurrentReload(t *testing.T) {
	t.Parallel()

	l := newTestLocalizer(t)
	a := Resource{Locale: "en-US", Entries: []Entry{{Key: "k", Value: "a"}, {Key: "j", Value: "a"}}}
	b := Resource{Locale: "en-US", Entries: []Entry{{Key: "k", Value: "b"}, {Key: "j", Value: "b"}}}
	if err := l.Reload(a); err != nil {
		t.Fatalf("reload: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 100)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				cat := l.Catalog()
				k, _ := cat.Lookup("en-US", "k")
				j, _ := cat.Lookup("en-US", "j")
				if k != j {
					errs <- string(k) + "/" + string(j)
					return
				}
			}
		}()
	}
	for n := 0; n < 100; n++ {
		res := a
		if n%2 == 0 {
			res = b
		}
		if err := l.Reload(res); err != nil {
			t.Fatalf("reload: %v", err)
		}
	}
	wg.Wait()
	close(errs)
	for mixed := range errs {
		t.Fatalf("reader observed mixed catalog %s", mixed)
	}
}

func TestStoreSwap(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	if s.Load() == nil {
		t.Fatal("expected empty catalog")
	}
	next, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	prev := s.Swap(next)
	if prev == nil || s.Load() != next {
		t.Fatal("swap did not install next catalog")
	}
}

// Package storetest holds the behaviour every core.DocumentStore must share.
// Backend packages call Run from their own tests with a factory that returns
// an empty store.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"portfolio-complete/core"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// Sample returns a fully populated document.
func Sample() *core.Document {
	return &core.Document{
		Name:   "Ada Lovelace",
		Title:  "Engineer",
		About:  "Writes programs for engines that do not exist yet.",
		Image:  "https://images.unsplash.com/photo-1",
		Skills: []string{"Go", "PostgreSQL", "Kubernetes"},
		Projects: []core.Project{
			{Title: "Engine", Description: "Analytical", Link: "https://example.com/engine", Image: "https://images.unsplash.com/photo-2"},
			{Title: "Notes", Description: "Translation", Link: "https://example.com/notes", Image: ""},
		},
		Contact: core.Contact{
			Email:    "ada@example.com",
			Phone:    "+44 1",
			LinkedIn: "https://linkedin.com/in/ada",
			GitHub:   "https://github.com/ada",
		},
		Blog: []core.BlogPost{
			{Title: "First", Date: "1843-09-01", Summary: "Note G", Link: "https://example.com/g"},
		},
	}
}

// Minimal is the smallest document a form can submit.
func Minimal() *core.Document {
	return &core.Document{
		Name:     "A",
		Title:    "B",
		Skills:   []string{},
		Projects: []core.Project{},
	}
}

func Run(t *testing.T, newStore func(t *testing.T) core.DocumentStore) {
	t.Run("FindEmpty", func(t *testing.T) {
		store := newStore(t)
		document, err := store.Find(context.Background())
		require.Nil(t, document)
		require.True(t, errors.Is(err, core.ErrNotFound), "want ErrNotFound, got %v", err)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		store := newStore(t)
		want := Sample()
		require.NoError(t, store.Replace(context.Background(), want))

		got, err := store.Find(context.Background())
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("MinimalRoundTrip", func(t *testing.T) {
		store := newStore(t)
		want := Minimal()
		require.NoError(t, store.Replace(context.Background(), want))

		got, err := store.Find(context.Background())
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
		require.Nil(t, got.Blog)
	})

	t.Run("ReplaceOverwrites", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Replace(context.Background(), Sample()))
		require.NoError(t, store.Replace(context.Background(), Minimal()))

		got, err := store.Find(context.Background())
		require.NoError(t, err)
		if diff := cmp.Diff(Minimal(), got); diff != "" {
			t.Fatalf("replace did not overwrite (-want +got):\n%s", diff)
		}
	})

	t.Run("ReplaceIdempotent", func(t *testing.T) {
		store := newStore(t)
		for i := 0; i < 2; i++ {
			require.NoError(t, store.Replace(context.Background(), Sample()))
			got, err := store.Find(context.Background())
			require.NoError(t, err)
			if diff := cmp.Diff(Sample(), got); diff != "" {
				t.Fatalf("call %d mismatch (-want +got):\n%s", i, diff)
			}
		}
	})

	t.Run("CopiesAreIndependent", func(t *testing.T) {
		store := newStore(t)
		submitted := Sample()
		require.NoError(t, store.Replace(context.Background(), submitted))
		submitted.Skills[0] = "mutated"

		first, err := store.Find(context.Background())
		require.NoError(t, err)
		first.Projects[0].Title = "mutated"

		second, err := store.Find(context.Background())
		require.NoError(t, err)
		if diff := cmp.Diff(Sample(), second); diff != "" {
			t.Fatalf("stored value changed through a caller copy (-want +got):\n%s", diff)
		}
	})

	t.Run("ConcurrentReplaceLastWriteWins", func(t *testing.T) {
		store := newStore(t)
		a, b := Sample(), Minimal()

		var wg sync.WaitGroup
		errs := make(chan error, 2)
		for _, d := range []*core.Document{a, b} {
			wg.Add(1)
			go func(d *core.Document) {
				defer wg.Done()
				errs <- store.Replace(context.Background(), d)
			}(d)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := store.Find(context.Background())
		require.NoError(t, err)
		if !cmp.Equal(Sample(), got) && !cmp.Equal(Minimal(), got) {
			t.Fatalf("store holds neither submitted value: %+v", got)
		}
	})
}

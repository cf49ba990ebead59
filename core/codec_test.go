package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCloneIsIndependent(t *testing.T) {
	original := &Document{
		Name:     "A",
		Skills:   []string{"Go", "SQL"},
		Projects: []Project{{Title: "p1"}, {Title: "p2"}},
	}

	copied, err := Clone(original)
	require.NoError(t, err)
	if diff := cmp.Diff(original, copied); diff != "" {
		t.Fatalf("clone mismatch (-want +got):\n%s", diff)
	}

	copied.Skills[0] = "Rust"
	copied.Projects[1].Title = "changed"
	require.Equal(t, "Go", original.Skills[0])
	require.Equal(t, "p2", original.Projects[1].Title)
}

func TestUnmarshalKeepsOrderAndOmitsBlog(t *testing.T) {
	data := []byte(`{"name":"A","title":"B","about":"","image":"","skills":["c","a","b"],"projects":[],"contact":{"email":"","phone":"","linkedin":"","github":""}}`)

	document, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, document.Skills)
	require.NotNil(t, document.Projects)
	require.Empty(t, document.Projects)
	require.Nil(t, document.Blog)

	encoded, err := Marshal(document)
	require.NoError(t, err)
	require.JSONEq(t, string(data), string(encoded))
}

func TestUnmarshalRejectsMalformedData(t *testing.T) {
	_, err := Unmarshal([]byte(`{"name":`))
	require.Error(t, err)
}

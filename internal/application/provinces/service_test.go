package provinces

import (
	"context"
	"testing"

	"remate/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_SeededCatalog(t *testing.T) {
	svc := &Service{DB: testutil.OpenStore(t)}
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 23)
	assert.Equal(t, "Buenos Aires", got[0].Name)
}

func TestExists(t *testing.T) {
	svc := &Service{DB: testutil.OpenStore(t)}
	ok, err := svc.Exists(context.Background(), "Neuquén")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(context.Background(), "neuquen")
	require.NoError(t, err)
	assert.False(t, ok)
}

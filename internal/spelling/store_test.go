package spelling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	return NewStore(filepath.Join(t.TempDir(), "spelling-lists", "spelling-lists.json"))
}

func TestListID(t *testing.T) {
	assert.Equal(t, "week-3-animals", ListID("Week 3: Animals!"))
	assert.Equal(t, "science", ListID("  Science  "))
	assert.Equal(t, "", ListID("!!!"))
}

func TestParseWords(t *testing.T) {
	assert.Equal(t, []string{"cat", "dog", "bird"}, ParseWords("cat, dog,,bird\n"))
	assert.Equal(t, []string{"ice cream", "hot dog"}, ParseWords("ice cream, hot dog"))
	assert.Equal(t, []string{"cat", "dog", "bird"}, ParseWords("cat\ndog\n\n  bird  "))
	assert.Empty(t, ParseWords("  \n "))
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	lists, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, lists)
	assert.Empty(t, lists)
}

func TestStore_AddReplaceDelete(t *testing.T) {
	s := newTestStore(t)

	list, replaced, err := s.Add("Animals", []string{"cat", "dog"})
	require.NoError(t, err)
	assert.False(t, replaced)
	assert.Equal(t, "animals", list.ID)
	assert.Equal(t, "custom-animals", list.LessonID())

	_, _, err = s.Add("Plants", []string{"fern"})
	require.NoError(t, err)

	list, replaced, err = s.Add("ANIMALS", []string{"owl"})
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, "ANIMALS", list.Name)

	lists, err := s.Load()
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, []string{"owl"}, lists[0].Words)

	got, err := s.Get("plants")
	require.NoError(t, err)
	assert.Equal(t, []string{"fern"}, got.Words)

	require.NoError(t, s.Delete("animals"))
	assert.ErrorIs(t, s.Delete("animals"), ErrListNotFound)
	_, err = s.Get("animals")
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestStore_AddRejectsBadInput(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Add("  ", []string{"a"})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, _, err = s.Add("Empty", nil)
	assert.ErrorIs(t, err, ErrNoWords)

	_, _, err = s.Add("???", []string{"a"})
	assert.Error(t, err)
}

func TestStore_CorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	_, err := s.Load()
	assert.Error(t, err)
}

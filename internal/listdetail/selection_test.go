package listdetail

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func TestSelection_SingleKeepsAtMostOne(t *testing.T) {
	s := NewSelection(SelectionSingle)
	for _, id := range []EntityID{"1", "2", "2", "3", "1"} {
		s.Select(id)
		assert.LessOrEqual(t, len(s.IDs()), 1)
	}
	assert.Equal(t, []EntityID{"1"}, s.IDs())
	assert.False(t, s.SelectAll([]EntityID{"1", "2"}), "select all is multiple-only")

	id, ok := s.state().Single()
	require.True(t, ok)
	assert.Equal(t, EntityID("1"), id)
}

func TestSelection_MultipleToggles(t *testing.T) {
	s := NewSelection(SelectionMultiple)
	s.Select("1")
	s.Select("2")
	s.Select("1")
	assert.Equal(t, []EntityID{"2"}, s.IDs())

	assert.True(t, s.SelectAll([]EntityID{"1", "2", "3", "2"}))
	assert.Equal(t, []EntityID{"1", "2", "3"}, s.IDs())

	assert.True(t, s.Clear())
	assert.NotNil(t, s.IDs())
	assert.Empty(t, s.IDs())
}

func TestSelection_NoneIgnoresEverything(t *testing.T) {
	s := NewSelection(SelectionNone)
	assert.False(t, s.Select("1"))
	assert.False(t, s.SelectAll([]EntityID{"1"}))
	assert.False(t, s.Has("1"))
	assert.Empty(t, s.IDs())
}

func TestParseSelectionMode(t *testing.T) {
	tests := map[string]SelectionMode{
		"":         SelectionNone,
		"none":     SelectionNone,
		"Single":   SelectionSingle,
		"multiple": SelectionMultiple,
		" multi ":  SelectionMultiple,
	}
	for in, want := range tests {
		got, err := ParseSelectionMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSelectionMode("some")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSelectionMode)
	assert.Contains(t, err.Error(), `"some"`)

	var zerrErr *zerr.Error
	require.True(t, errors.As(err, &zerrErr))
	assert.Equal(t, "some", zerrErr.Metadata()["value"])
}

func TestModeForWidth(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{0, LayoutMobile},
		{767, LayoutMobile},
		{768, LayoutTablet},
		{1023, LayoutTablet},
		{1024, LayoutDesktop},
		{2560, LayoutDesktop},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ModeForWidth(tt.width), "width %d", tt.width)
	}
	assert.Equal(t, "desktop", LayoutDesktop.String())
}

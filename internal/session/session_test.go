package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLocal(t *testing.T) {
	t.Run("Resets the pipeline chain and the display", func(t *testing.T) {
		s := New()
		s.Uploaded = "cat_1.png"
		s.Watermarked = "cat_1_wm.png"
		s.Edited = "cat_1_wm_r.png"
		s.Displayed = "cat_1_wm_r.png"

		s.SetLocal(LocalFile{Name: "dog.png", Size: 42, Path: "/tmp/dog.png"})

		assert.Equal(t, "dog.png", s.Local.Name)
		assert.Empty(t, s.Uploaded)
		assert.Empty(t, s.Watermarked)
		assert.Empty(t, s.Edited)
		assert.Empty(t, s.Displayed)
	})

	t.Run("Keeps the detection statistics", func(t *testing.T) {
		s := New()
		s.Stats = Stats{Tests: 3, Found: 2, LastScore: "0.842"}

		s.SetLocal(LocalFile{Name: "dog.png", Path: "/tmp/dog.png"})

		assert.Equal(t, Stats{Tests: 3, Found: 2, LastScore: "0.842"}, s.Stats)
	})
}

func TestLatest(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		want    string
	}{
		{
			name: "Edited wins over everything",
			session: Session{
				Uploaded: "a.png", Watermarked: "b.png", Edited: "c.png",
			},
			want: "c.png",
		},
		{
			name: "Watermarked wins over uploaded",
			session: Session{
				Uploaded: "a.png", Watermarked: "b.png",
			},
			want: "b.png",
		},
		{
			name:    "Uploaded alone",
			session: Session{Uploaded: "a.png"},
			want:    "a.png",
		},
		{
			name:    "Nothing produced yet",
			session: Session{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.Latest())
		})
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.SetLocal(LocalFile{Name: "cat.png", Path: "/tmp/cat.png"})
	s.Uploaded = "cat_1.png"
	s.Stats = Stats{Tests: 5, Found: 1, LastScore: "0.120"}

	s.Clear()

	assert.Nil(t, s.Local)
	assert.False(t, s.HasLocal())
	assert.Empty(t, s.Latest())
	assert.Equal(t, Stats{}, s.Stats)
}

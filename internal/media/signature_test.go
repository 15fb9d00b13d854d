package media

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerSign(t *testing.T) {
	t.Parallel()

	s := NewSigner("demo", "key123", "secret456", "posts")

	t.Run("parameters are sorted by key", func(t *testing.T) {
		t.Parallel()

		got := s.Sign(map[string]string{
			"timestamp": "1700000000",
			"folder":    "posts",
		})

		sum := sha1.Sum([]byte("folder=posts&timestamp=1700000000secret456"))
		assert.Equal(t, hex.EncodeToString(sum[:]), got)
	})

	t.Run("empty values are skipped", func(t *testing.T) {
		t.Parallel()

		withEmpty := s.Sign(map[string]string{"timestamp": "1700000000", "folder": ""})
		without := s.Sign(map[string]string{"timestamp": "1700000000"})
		assert.Equal(t, without, withEmpty)
	})
}

func TestSignerUploadSignature(t *testing.T) {
	t.Parallel()

	s := NewSigner("demo", "key123", "secret456", "posts")
	now := time.Unix(1700000000, 0)

	resp := s.UploadSignature(now)
	assert.Equal(t, int64(1700000000), resp.Timestamp)
	assert.Equal(t, "key123", resp.APIKey)
	assert.Equal(t, "demo", resp.CloudName)
	assert.Equal(t, "posts", resp.Folder)

	expected := s.Sign(map[string]string{"timestamp": "1700000000", "folder": "posts"})
	assert.Equal(t, expected, resp.Signature)
}

func TestSignerEnabled(t *testing.T) {
	t.Parallel()

	assert.True(t, NewSigner("demo", "k", "s", "").Enabled())
	assert.False(t, NewSigner("", "k", "s", "").Enabled())
	assert.False(t, NewSigner("demo", "", "s", "").Enabled())
	assert.False(t, NewSigner("demo", "k", "", "").Enabled())
}

func TestSignerDeliveryURL(t *testing.T) {
	t.Parallel()

	s := NewSigner("demo", "k", "s", "")
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/posts/abc123", s.DeliveryURL("posts/abc123"))
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	t.Run("short text stays on one line", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"hello world"}, wrapText("hello world", 48, 6))
	})

	t.Run("long text wraps at word boundaries", func(t *testing.T) {
		t.Parallel()

		lines := wrapText("one two three four five six seven eight", 12, 6)
		require.NotEmpty(t, lines)
		for _, line := range lines {
			assert.LessOrEqual(t, len(line), 13)
		}
	})

	t.Run("truncated text gets ellipsis", func(t *testing.T) {
		t.Parallel()

		long := "word word word word word word word word word word word word word word"
		lines := wrapText(long, 10, 3)
		require.Len(t, lines, 3)
		assert.True(t, len(lines[2]) > 3 && lines[2][len(lines[2])-3:] == "...")
	})
}

func TestOGRendererRender(t *testing.T) {
	t.Parallel()

	r := NewOGRenderer(t.TempDir())
	require.True(t, r.Enabled())

	rel, err := r.Render(42, "shayari_fan", "dil se likhi baat, sab tak pahunch jaati hai")
	require.NoError(t, err)
	assert.Equal(t, "og/42.png", rel)
}

func TestOGRendererDisabled(t *testing.T) {
	t.Parallel()
	assert.False(t, NewOGRenderer("").Enabled())
}

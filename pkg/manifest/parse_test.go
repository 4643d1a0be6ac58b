package manifest

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/pyver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	t.Run("parses a bare directive", func(t *testing.T) {
		dep, err := ParseLine("openai>=1.0.0")
		require.NoError(t, err)

		assert.Equal(t, "openai", dep.Name)
		assert.Equal(t, pyver.OpGte, dep.Comparator)
		assert.Equal(t, "1.0.0", dep.Version)
		assert.Equal(t, "", dep.Comment)
	})

	t.Run("parses a trailing comment", func(t *testing.T) {
		dep, err := ParseLine("Pillow>=10.0.0           # Image processing")
		require.NoError(t, err)

		assert.Equal(t, "Pillow", dep.Name)
		assert.Equal(t, pyver.OpGte, dep.Comparator)
		assert.Equal(t, "10.0.0", dep.Version)
		assert.Equal(t, "Image processing", dep.Comment)
	})

	t.Run("recognizes every comparator", func(t *testing.T) {
		for _, op := range pyver.Comparators {
			dep, err := ParseLine("pkg" + string(op) + "1.2.3")
			require.NoError(t, err)

			assert.Equal(t, op, dep.Comparator)
			assert.Equal(t, "1.2.3", dep.Version)
		}
	})

	t.Run("takes the earliest comparator", func(t *testing.T) {
		dep, err := ParseLine("foo>=1.0.0 # use >= not ==")
		require.NoError(t, err)

		assert.Equal(t, "foo", dep.Name)
		assert.Equal(t, pyver.OpGte, dep.Comparator)
	})

	t.Run("rejects a line without a comparator", func(t *testing.T) {
		_, err := ParseLine("just-a-name")
		require.Error(t, err)

		assert.True(t, errors.Is(err, ErrNoComparator))
	})

	t.Run("rejects a bad name", func(t *testing.T) {
		_, err := ParseLine("-foo>=1.0")
		require.Error(t, err)

		assert.True(t, errors.Is(err, ErrBadName))
	})

	t.Run("rejects a missing version", func(t *testing.T) {
		_, err := ParseLine("foo>=")
		require.Error(t, err)

		assert.True(t, errors.Is(err, ErrNoVersion))
	})

	t.Run("rejects trailing garbage", func(t *testing.T) {
		_, err := ParseLine("foo>=1.0 bar")
		require.Error(t, err)

		assert.True(t, errors.Is(err, ErrTrailing))
	})
}

const sampleManifest = `# RAG-Anything Dependencies
raganything>=0.1.0
openai>=1.0.0
python-dotenv>=1.0.0

# Optional dependencies for extended document format support
Pillow>=10.0.0           # Image processing
reportlab>=4.0.0         # PDF generation

# Development dependencies
pytest>=7.0.0
`

func TestLoad(t *testing.T) {
	t.Run("splits sections on blank lines", func(t *testing.T) {
		m, err := Load(strings.NewReader(sampleManifest))
		require.NoError(t, err)

		require.Len(t, m.Sections, 3)

		assert.Equal(t, []string{"# RAG-Anything Dependencies"}, m.Sections[0].Header)
		require.Len(t, m.Sections[0].Deps, 3)

		assert.Equal(t, "raganything", m.Sections[0].Deps[0].Name)
		assert.Equal(t, 2, m.Sections[0].Deps[0].Line)

		require.Len(t, m.Sections[1].Deps, 2)
		assert.Equal(t, "Pillow", m.Sections[1].Deps[0].Name)
		assert.Equal(t, "Image processing", m.Sections[1].Deps[0].Comment)

		require.Len(t, m.Sections[2].Deps, 1)
		assert.Equal(t, "pytest", m.Sections[2].Deps[0].Name)
	})

	t.Run("reports the failing line", func(t *testing.T) {
		_, err := Load(strings.NewReader("good>=1.0\nbad line\n"))
		require.Error(t, err)

		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("handles a file without a trailing newline", func(t *testing.T) {
		m, err := Load(strings.NewReader("openai>=1.0.0"))
		require.NoError(t, err)

		require.Len(t, m.Dependencies(), 1)
	})

	t.Run("loads an empty file", func(t *testing.T) {
		m, err := Load(strings.NewReader(""))
		require.NoError(t, err)

		assert.Empty(t, m.Dependencies())
	})
}

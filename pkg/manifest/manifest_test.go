package manifest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reqwire/reqwire/pkg/pyver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "pillow", NormalizeName("Pillow"))
	assert.Equal(t, "python-dotenv", NormalizeName("python_dotenv"))
	assert.Equal(t, "zope-interface", NormalizeName("Zope.Interface"))
	assert.Equal(t, "a-b", NormalizeName("a-_.b"))
}

func TestManifest(t *testing.T) {
	load := func(t *testing.T) *Manifest {
		m, err := Load(strings.NewReader(sampleManifest))
		require.NoError(t, err)
		return m
	}

	t.Run("looks up by normalized name", func(t *testing.T) {
		m := load(t)

		dep, ok := m.Lookup("pillow")
		require.True(t, ok)

		assert.Equal(t, "Pillow", dep.Name)

		dep, ok = m.Lookup("python_dotenv")
		require.True(t, ok)

		assert.Equal(t, "python-dotenv", dep.Name)

		_, ok = m.Lookup("nope")
		require.False(t, ok)
	})

	t.Run("add replaces an existing entry in place", func(t *testing.T) {
		m := load(t)

		m.Add(&Dependency{
			Name:       "pillow",
			Comparator: pyver.OpGte,
			Version:    "11.0.0",
		}, "")

		dep, ok := m.Lookup("Pillow")
		require.True(t, ok)

		assert.Equal(t, "11.0.0", dep.Version)
		assert.Equal(t, "Image processing", dep.Comment, "comment survives an update")

		// still in the optional section, not appended elsewhere
		assert.Equal(t, "pillow", NormalizeName(m.Sections[1].Deps[0].Name))
	})

	t.Run("add targets the section naming the header", func(t *testing.T) {
		m := load(t)

		m.Add(&Dependency{
			Name:       "black",
			Comparator: pyver.OpGte,
			Version:    "23.0.0",
		}, "development")

		require.Len(t, m.Sections[2].Deps, 2)
		assert.Equal(t, "black", m.Sections[2].Deps[1].Name)
	})

	t.Run("add falls back to the last populated section", func(t *testing.T) {
		m := load(t)

		m.Add(&Dependency{
			Name:       "requests",
			Comparator: pyver.OpGte,
			Version:    "2.31.0",
		}, "")

		deps := m.Sections[2].Deps
		assert.Equal(t, "requests", deps[len(deps)-1].Name)
	})

	t.Run("add to an empty manifest creates a section", func(t *testing.T) {
		var m Manifest

		m.Add(&Dependency{
			Name:       "openai",
			Comparator: pyver.OpGte,
			Version:    "1.0.0",
		}, "")

		require.Len(t, m.Sections, 1)
		require.Len(t, m.Sections[0].Deps, 1)
	})

	t.Run("remove deletes by normalized name", func(t *testing.T) {
		m := load(t)

		require.True(t, m.Remove("PILLOW"))
		require.False(t, m.Remove("PILLOW"))

		_, ok := m.Lookup("pillow")
		assert.False(t, ok)
	})
}

func TestSave(t *testing.T) {
	t.Run("aligns trailing comments per section", func(t *testing.T) {
		m, err := Load(strings.NewReader("# opt\nPillow>=10.0.0 # images\nreportlab>=4.0.0 # pdf\n"))
		require.NoError(t, err)

		var buf bytes.Buffer

		err = m.Save(&buf)
		require.NoError(t, err)

		expected := "# opt\n" +
			"Pillow>=10.0.0    # images\n" +
			"reportlab>=4.0.0  # pdf\n"

		assert.Equal(t, expected, buf.String())
	})

	t.Run("separates sections with one blank line", func(t *testing.T) {
		m, err := Load(strings.NewReader("a>=1.0\n\n\n\n# dev\nb>=2.0\n"))
		require.NoError(t, err)

		var buf bytes.Buffer

		err = m.Save(&buf)
		require.NoError(t, err)

		assert.Equal(t, "a>=1.0\n\n# dev\nb>=2.0\n", buf.String())
	})

	t.Run("canonical output is stable", func(t *testing.T) {
		m, err := Load(strings.NewReader(sampleManifest))
		require.NoError(t, err)

		var first bytes.Buffer
		require.NoError(t, m.Save(&first))

		m2, err := Load(bytes.NewReader(first.Bytes()))
		require.NoError(t, err)

		var second bytes.Buffer
		require.NoError(t, m2.Save(&second))

		assert.Equal(t, first.String(), second.String())
	})
}

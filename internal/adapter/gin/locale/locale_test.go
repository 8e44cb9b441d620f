package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewMatcher_UnsupportedDefault(t *testing.T) {
	_, err := NewMatcher("de")
	assert.Error(t, err)

	_, err = NewMatcher("not a locale!")
	assert.Error(t, err)
}

func TestMatch(t *testing.T) {
	m, err := NewMatcher("en")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   language.Tag
	}{
		{"empty header", "", language.English},
		{"russian", "ru-RU,ru;q=0.9", language.Russian},
		{"english preferred", "en-US,en;q=0.9,ru;q=0.8", language.English},
		{"russian preferred", "ru;q=0.9,en;q=0.5", language.Russian},
		{"unsupported only", "ja-JP", language.English},
		{"garbage", ";;;q=abc", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, _ := m.Match(tt.header)
			assert.Equal(t, tt.want, tag)
		})
	}
}

func TestMatch_RussianDefault(t *testing.T) {
	m, err := NewMatcher("ru-RU")
	require.NoError(t, err)

	tag, msgs := m.Match("")
	assert.Equal(t, language.Russian, tag)
	assert.Equal(t, "Пользователи", msgs.Heading)

	tag, _ = m.Match("fr")
	assert.Equal(t, language.Russian, tag)
}

func TestLoadError(t *testing.T) {
	m, err := NewMatcher("en")
	require.NoError(t, err)

	_, en := m.Match("en")
	assert.Equal(t, "Error 404 loading data", en.LoadError(404))
	assert.Equal(t, "Error 500 loading data", en.LoadError(500))

	_, ru := m.Match("ru")
	assert.Equal(t, "Ошибка 404 при загрузке данных", ru.LoadError(404))
}

// Package locale selects the UI strings of the users page.
package locale

import (
	"fmt"

	"golang.org/x/text/language"
)

// Messages holds every user-visible string of the page.
type Messages struct {
	Title           string
	Description     string
	Heading         string
	ColumnID        string
	ColumnFirstName string
	ColumnLastName  string
	ColumnPhone     string
	ColumnEmail     string
	ColumnUpdatedAt string
	First           string
	Prev            string
	Next            string
	Last            string
	loadError       string
}

// LoadError returns the banner text shown when the users could not be loaded.
func (m Messages) LoadError(statusCode int) string {
	return fmt.Sprintf(m.loadError, statusCode)
}

var catalog = map[language.Tag]Messages{
	language.English: {
		Title:           "Users",
		Description:     "Paginated list of users",
		Heading:         "Users",
		ColumnID:        "ID",
		ColumnFirstName: "First name",
		ColumnLastName:  "Last name",
		ColumnPhone:     "Phone",
		ColumnEmail:     "Email",
		ColumnUpdatedAt: "Updated at",
		First:           "«",
		Prev:            "‹",
		Next:            "›",
		Last:            "»",
		loadError:       "Error %d loading data",
	},
	language.Russian: {
		Title:           "Пользователи",
		Description:     "Постраничный список пользователей",
		Heading:         "Пользователи",
		ColumnID:        "ID",
		ColumnFirstName: "Имя",
		ColumnLastName:  "Фамилия",
		ColumnPhone:     "Телефон",
		ColumnEmail:     "Email",
		ColumnUpdatedAt: "Дата обновления",
		First:           "«",
		Prev:            "‹",
		Next:            "›",
		Last:            "»",
		loadError:       "Ошибка %d при загрузке данных",
	},
}

// Matcher picks the catalog entry for an Accept-Language header.
type Matcher struct {
	matcher  language.Matcher
	tags     []language.Tag
	fallback language.Tag
}

// NewMatcher creates a matcher falling back to defaultLocale, which must be
// one of the supported locales ("en", "ru").
func NewMatcher(defaultLocale string) (*Matcher, error) {
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", defaultLocale, err)
	}
	base, _ := fallback.Base()
	fallback = language.Make(base.String())
	if _, ok := catalog[fallback]; !ok {
		return nil, fmt.Errorf("unsupported default locale %q", defaultLocale)
	}

	// The first tag is the matcher's fallback.
	tags := []language.Tag{fallback}
	for _, tag := range []language.Tag{language.English, language.Russian} {
		if tag != fallback {
			tags = append(tags, tag)
		}
	}

	return &Matcher{
		matcher:  language.NewMatcher(tags),
		tags:     tags,
		fallback: fallback,
	}, nil
}

// Match returns the language tag and messages for an Accept-Language header.
func (m *Matcher) Match(acceptLanguage string) (language.Tag, Messages) {
	if acceptLanguage == "" {
		return m.fallback, catalog[m.fallback]
	}

	wanted, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(wanted) == 0 {
		return m.fallback, catalog[m.fallback]
	}

	_, index, confidence := m.matcher.Match(wanted...)
	if confidence == language.No {
		return m.fallback, catalog[m.fallback]
	}

	tag := m.tags[index]
	return tag, catalog[tag]
}

package names

import (
	"strings"

	"github.com/gertd/go-pluralize"
	"github.com/iancoleman/strcase"
)

// Service — детерминированные преобразования имён: кейсинг, число,
// проверка зарезервированных слов. Чистые функции, состояния нет
// (кроме неизменяемого словаря).
type Service struct {
	reserved map[string]struct{}
	pl       *pluralize.Client
}

func New(reserved []string) *Service {
	s := &Service{
		reserved: make(map[string]struct{}, len(reserved)),
		pl:       pluralize.NewClient(),
	}
	for _, w := range reserved {
		s.reserved[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return s
}

// IsReserved — регистронезависимая проверка по словарю
func (s *Service) IsReserved(word string) bool {
	_, ok := s.reserved[strings.ToLower(word)]
	return ok
}

func (s *Service) IsPlural(word string) bool { return s.pl.IsPlural(word) }

// ModelName приводит имя модели к каноничной форме: PascalCase, единственное число.
// "orders" -> "Order", "user_profile" -> "UserProfile"
func (s *Service) ModelName(raw string) string {
	return strcase.ToCamel(s.pl.Singular(raw))
}

// FieldName приводит имя поля к camelCase: "first_name" -> "firstName"
func (s *Service) FieldName(raw string) string {
	return strcase.ToLowerCamel(raw)
}

// DisplayName делает человекочитаемое имя: "orderItem" -> "Order Item"
func (s *Service) DisplayName(raw string) string {
	words := strings.Fields(strcase.ToDelimited(raw, ' '))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// PluralDisplayName — display-имя во множественном числе ("Order Item" -> "Order Items")
func (s *Service) PluralDisplayName(raw string) string {
	d := s.DisplayName(raw)
	i := strings.LastIndexByte(d, ' ')
	if i < 0 {
		return s.pl.Plural(d)
	}
	return d[:i+1] + s.pl.Plural(d[i+1:])
}

// Plural — множественная форма как есть (для имён таблиц и т.п.)
func (s *Service) Plural(raw string) string { return s.pl.Plural(raw) }

package reference

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// встроенный словарь: SQL-ключевые слова + имена, конфликтующие с кодогенерацией.
// Справочники из каталога дополняют его, но не заменяют.
var builtinReserved = []string{
	"select", "table", "insert", "update", "delete",
	"where", "join", "group", "limit", "offset",
	"primary", "foreign", "constraint", "default",
	"from", "into", "values", "unique", "index", "create",
	"drop", "alter", "schema", "grant", "revoke", "user",
	"query", "mutation", "entity", "model", "enum",
}

// LoadReservedCatalog собирает словарь зарезервированных слов: встроенный
// список плюс все *.yaml/*.yml из dir. Пустой или отсутствующий каталог —
// не ошибка, работаем на встроенных.
func LoadReservedCatalog(dir string) ([]string, error) {
	out := append([]string(nil), builtinReserved...)
	if strings.TrimSpace(dir) == "" {
		return out, nil
	}
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}
		var wl WordList
		if err := yaml.Unmarshal(data, &wl); err != nil {
			return nil, err
		}
		out = append(out, wl.Words...)
	}
	return out, nil
}

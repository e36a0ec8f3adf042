package convert

import (
	"io"
	"log"
	"math/rand"
	"time"

	"vereteno/internal/names"
	"vereteno/internal/psl"

	"github.com/oklog/ulid/v2"
)

// Converter — конвейер normalize → classify → resolve → build.
// Держит только неизменяемые коллабораторы, I/O не делает; один Convert —
// чистая функция входного текста (с точностью до свежих id).
type Converter struct {
	names   *names.Service
	log     *log.Logger
	entropy io.Reader
}

// New создаёт конвертер. logger может быть nil — от него зависит только
// наблюдаемость, не результат.
func New(n *names.Service, logger *log.Logger) *Converter {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Converter{
		names:   n,
		log:     logger,
		entropy: ulid.Monotonic(src, 0),
	}
}

func (c *Converter) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), c.entropy).String()
}

func (c *Converter) logf(format string, args ...any) {
	if c.log != nil {
		c.log.Printf(format, args...)
	}
}

// Convert: текст схемы → дескрипторы сущностей (в порядке объявления моделей)
// плюс структурные замечания. Фатальные несоответствия схемы — ошибкой.
func (c *Converter) Convert(text string) ([]EntityDescriptor, []SchemaIssue, error) {
	schema, err := psl.Parse(text)
	if err != nil {
		return nil, nil, err
	}
	issues := c.ValidateSchema(schema)
	for _, is := range issues {
		if is.Level == LevelError && is.Code == CodeNoModels {
			// конвертировать нечего
			return []EntityDescriptor{}, issues, nil
		}
	}
	norm := c.Normalize(schema)
	entities, err := c.buildEntities(norm)
	if err != nil {
		return nil, issues, err
	}
	return entities, issues, nil
}

// Validate: текст схемы → только структурные замечания
func (c *Converter) Validate(text string) ([]SchemaIssue, error) {
	schema, err := psl.Parse(text)
	if err != nil {
		return nil, err
	}
	return c.ValidateSchema(schema), nil
}

// NormalizeText: текст схемы → нормализованный текст (для предпросмотра
// авто-исправлений перед загрузкой)
func (c *Converter) NormalizeText(text string) (string, error) {
	schema, err := psl.Parse(text)
	if err != nil {
		return "", err
	}
	return psl.Print(c.Normalize(schema)), nil
}

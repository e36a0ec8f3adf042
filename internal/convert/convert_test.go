package convert

import (
	"testing"

	"vereteno/internal/names"
	"vereteno/internal/psl"
	"vereteno/internal/reference"

	"github.com/stretchr/testify/require"
)

func testConverter(t *testing.T) *Converter {
	t.Helper()
	words, err := reference.LoadReservedCatalog("")
	require.NoError(t, err)
	return New(names.New(words), nil)
}

func mustParse(t *testing.T, text string) *psl.Schema {
	t.Helper()
	s, err := psl.Parse(text)
	require.NoError(t, err)
	return s
}

const customerOrderSchema = `
model Customer {
  id     Int     @id @default(autoincrement())
  name   String
  orders Order[]
}

model Order {
  id         Int      @id
  customerId Int
  customer   Customer @relation(fields: [customerId], references: [id])
}
`

func TestConvertParseError(t *testing.T) {
	c := testConverter(t)
	_, _, err := c.Convert("model Broken {")
	require.Error(t, err)
}

func TestConvertEmptySchema(t *testing.T) {
	c := testConverter(t)
	entities, issues, err := c.Convert("enum Lonely {\n  A\n}\n")
	require.NoError(t, err)
	require.Empty(t, entities)
	require.Len(t, issues, 1)
	require.Equal(t, LevelError, issues[0].Level)
	require.Equal(t, CodeNoModels, issues[0].Code)
}

// два прогона на одном входе совпадают во всём, кроме свежих id
func TestConvertReentrant(t *testing.T) {
	c := testConverter(t)
	e1, _, err := c.Convert(customerOrderSchema)
	require.NoError(t, err)
	e2, _, err := c.Convert(customerOrderSchema)
	require.NoError(t, err)

	require.Len(t, e2, len(e1))
	for i := range e1 {
		require.NotEqual(t, e1[i].ID, e2[i].ID)
		require.Equal(t, e1[i].Name, e2[i].Name)
		require.Equal(t, len(e1[i].Fields), len(e2[i].Fields))
		for j := range e1[i].Fields {
			a, b := e1[i].Fields[j], e2[i].Fields[j]
			require.Equal(t, a.Name, b.Name)
			require.Equal(t, a.DataType, b.DataType)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	c := testConverter(t)
	out, err := c.NormalizeText("model orders {\n  id Int @id\n}\n")
	require.NoError(t, err)
	require.Contains(t, out, "model Order {")
	require.Contains(t, out, `@@map("orders")`)
}

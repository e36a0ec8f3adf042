package psl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSchema = `
// тестовая схема
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

enum Status {
  Active
  Inactive
}
`

func TestParseBasic(t *testing.T) {
	s, err := Parse(sampleSchema)
	require.NoError(t, err)

	require.Len(t, s.Models, 2)
	require.Len(t, s.Enums, 1)

	customer := s.Model("Customer")
	require.NotNil(t, customer)
	require.Len(t, customer.Fields, 3)

	id := customer.Field("id")
	require.NotNil(t, id)
	assert.Equal(t, "Int", id.Type)
	assert.True(t, id.HasAttr("id"))

	def := id.Attr("default")
	require.NotNil(t, def)
	require.Len(t, def.Args, 1)
	require.Equal(t, ValFunc, def.Args[0].Value.Kind)
	assert.Equal(t, "autoincrement", def.Args[0].Value.Fn.Name)

	orders := customer.Field("orders")
	require.NotNil(t, orders)
	assert.True(t, orders.Array)
	assert.False(t, orders.Optional)
	assert.Equal(t, "Order", orders.Type)

	order := s.Model("Order")
	require.NotNil(t, order)
	rel := order.Field("customer").Attr("relation")
	require.NotNil(t, rel)
	assert.Equal(t, []string{"customerId"}, rel.Arg("fields").StringArgs())
	assert.Equal(t, []string{"id"}, rel.Arg("references").StringArgs())

	st := s.Enum("Status")
	require.NotNil(t, st)
	assert.Equal(t, []string{"Active", "Inactive"}, st.Values)
}

func TestParseOptionalAndBlockAttrs(t *testing.T) {
	s, err := Parse(`
model Invoice {
  id    String  @id @default(cuid())
  note  String?
  total Float
  @@map("invoices")
}
`)
	require.NoError(t, err)
	inv := s.Model("Invoice")
	require.NotNil(t, inv)
	assert.True(t, inv.Field("note").Optional)

	mp := inv.Attr("map")
	require.NotNil(t, mp)
	assert.True(t, mp.Block)
	assert.Equal(t, ValString, mp.Args[0].Value.Kind)
	assert.Equal(t, "invoices", mp.Args[0].Value.Str)
}

func TestParseNamedRelation(t *testing.T) {
	s, err := Parse(`
model Post {
  id       Int  @id
  authorId Int
  author   User @relation("WrittenPosts", fields: [authorId], references: [id])
}

model User {
  id    Int    @id
  posts Post[] @relation("WrittenPosts")
}
`)
	require.NoError(t, err)
	rel := s.Model("Post").Field("author").Attr("relation")
	require.NotNil(t, rel)
	pos := rel.Arg("")
	require.NotNil(t, pos)
	assert.Equal(t, "WrittenPosts", pos.Value.Str)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"unterminated model": "model A {",
		"nested declaration": "model A {\nmodel B {\n}\n}",
		"bad enum value":     "enum E {\nnot a value\n}",
		"stray close":        "}",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(text)
			require.Error(t, err)
		})
	}
}

func TestCommentsStripped(t *testing.T) {
	s, err := Parse(`
model A {
  id Int @id // первичный ключ
  url String @default("https://example.com") // слэши в кавычках не комментарий
}
`)
	require.NoError(t, err)
	def := s.Model("A").Field("url").Attr("default")
	require.NotNil(t, def)
	assert.Equal(t, "https://example.com", def.Args[0].Value.Str)
}

// round-trip: печать и повторный парсинг дают семантически то же дерево
func TestRoundTrip(t *testing.T) {
	s1, err := Parse(sampleSchema)
	require.NoError(t, err)

	text := Print(s1)
	s2, err := Parse(text)
	require.NoError(t, err)
	require.Equal(t, s1, s2)

	// и ещё раз — печать стабильна
	require.Equal(t, text, Print(s2))
}

func TestRenderAttribute(t *testing.T) {
	s, err := Parse(`
model Order {
  id       Int      @id
  buyerId  Int
  buyer    Customer @relation(fields: [buyerId], references: [id])
}
model Customer {
  id Int @id
}
`)
	require.NoError(t, err)
	rel := s.Model("Order").Field("buyer").Attr("relation")
	assert.Equal(t, "@relation(fields: [buyerId], references: [id])", RenderAttribute(rel))

	blockMap := Attribute{Name: "map", Block: true, Args: []Arg{{Value: Value{Kind: ValString, Str: "orders"}}}}
	assert.Equal(t, `@@map("orders")`, RenderAttribute(&blockMap))

	// пустой default-вызов опускается целиком
	emptyDefault := Attribute{Name: "default"}
	assert.Equal(t, "", RenderAttribute(&emptyDefault))
}

func TestCloneIsDeep(t *testing.T) {
	s1, err := Parse(sampleSchema)
	require.NoError(t, err)
	s2 := s1.Clone()
	require.Equal(t, s1, s2)

	s2.Models[0].Name = "Changed"
	s2.Models[1].Fields[0].Attrs[0].Name = "changed"
	assert.Equal(t, "Customer", s1.Models[0].Name)
	assert.Equal(t, "id", s1.Models[1].Fields[0].Attrs[0].Name)
}

package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelName(t *testing.T) {
	s := New(nil)
	assert.Equal(t, "Order", s.ModelName("orders"))
	assert.Equal(t, "UserProfile", s.ModelName("user_profile"))
	assert.Equal(t, "Person", s.ModelName("people"))
	assert.Equal(t, "Customer", s.ModelName("Customer"))
}

func TestFieldName(t *testing.T) {
	s := New(nil)
	assert.Equal(t, "firstName", s.FieldName("first_name"))
	assert.Equal(t, "createdAt", s.FieldName("created_at"))
	assert.Equal(t, "email", s.FieldName("email"))
}

func TestDisplayName(t *testing.T) {
	s := New(nil)
	assert.Equal(t, "Order Item", s.DisplayName("orderItem"))
	assert.Equal(t, "Customer", s.DisplayName("Customer"))
	assert.Equal(t, "First Name", s.DisplayName("first_name"))
}

func TestPluralDisplayName(t *testing.T) {
	s := New(nil)
	assert.Equal(t, "Order Items", s.PluralDisplayName("OrderItem"))
	assert.Equal(t, "Customers", s.PluralDisplayName("Customer"))
	assert.Equal(t, "People", s.PluralDisplayName("Person"))
}

func TestIsPlural(t *testing.T) {
	s := New(nil)
	assert.True(t, s.IsPlural("orders"))
	assert.False(t, s.IsPlural("Order"))
}

func TestIsReserved(t *testing.T) {
	s := New([]string{"select", " Table "})
	assert.True(t, s.IsReserved("select"))
	assert.True(t, s.IsReserved("SELECT"))
	assert.True(t, s.IsReserved("table"))
	assert.False(t, s.IsReserved("customer"))
}

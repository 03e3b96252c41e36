package rules

import (
	"testing"

	"github.com/davidlpuk/property-ledger-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyMatcher(t *testing.T) {
	properties := []model.Property{
		{ID: 1, Name: "Flat 2B", Keywords: []string{"flat 2b", "oak street"}},
		{ID: 2, Name: "Garage", Keywords: []string{"garaje", "parking"}},
	}
	m := NewPropertyMatcher(properties)

	t.Run("keyword containment is case insensitive", func(t *testing.T) {
		id := m.Match("RENT PAYMENT FLAT 2B MARCH")
		require.NotNil(t, id)
		assert.Equal(t, int64(1), *id)
	})

	t.Run("first property wins", func(t *testing.T) {
		id := m.Match("transfer OAK STREET parking")
		require.NotNil(t, id)
		assert.Equal(t, int64(1), *id)
	})

	t.Run("no match leaves nil", func(t *testing.T) {
		assert.Nil(t, m.Match("SUPERMARKET PURCHASE"))
	})

	t.Run("blank keywords are ignored", func(t *testing.T) {
		blank := NewPropertyMatcher([]model.Property{{ID: 3, Keywords: []string{"", "  "}}})
		assert.Nil(t, blank.Match("anything"))
	})
}

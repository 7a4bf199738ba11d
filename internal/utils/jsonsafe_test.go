package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJSONSafeScalars(t *testing.T) {
	dec, err := primitive.ParseDecimal128("19.99")
	require.NoError(t, err)

	id := uuid.MustParse("a2f8b1de-6c3a-4f6e-9d10-1f2e3d4c5b6a")
	when := time.Date(2025, 6, 3, 9, 15, 0, 0, time.UTC)

	assert.Equal(t, 19.99, JSONSafe(dec))
	assert.Equal(t, "2025-06-03T09:15:00Z", JSONSafe(when))
	assert.Equal(t, "a2f8b1de-6c3a-4f6e-9d10-1f2e3d4c5b6a", JSONSafe(id))
	assert.Nil(t, JSONSafe(nil))
	assert.Equal(t, "hello", JSONSafe("hello"))
	assert.Equal(t, 42, JSONSafe(42))
}

func TestJSONSafeBSONTypes(t *testing.T) {
	oid := primitive.NewObjectID()
	dt := primitive.NewDateTimeFromTime(time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, oid.Hex(), JSONSafe(oid))
	assert.Equal(t, "2025-01-15T09:00:00Z", JSONSafe(dt))
}

// Propriété aller-retour : une structure mêlant décimal, date et UUID ne
// contient plus que des float/string après conversion, récursivement, et les
// ensembles deviennent des séquences.
func TestJSONSafeRecursive(t *testing.T) {
	dec, err := primitive.ParseDecimal128("129.50")
	require.NoError(t, err)

	input := bson.M{
		"price":   dec,
		"created": time.Date(2025, 5, 12, 14, 30, 0, 0, time.UTC),
		"id":      uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		"tags":    map[string]struct{}{"b": {}, "a": {}, "c": {}},
		"nested": map[string]interface{}{
			"amounts": []interface{}{dec, dec},
		},
		"raw": primitive.A{"x", dec},
	}

	out, ok := JSONSafe(input).(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, 129.5, out["price"])
	assert.Equal(t, "2025-05-12T14:30:00Z", out["created"])
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", out["id"])

	// Ensemble → séquence triée
	assert.Equal(t, []interface{}{"a", "b", "c"}, out["tags"])

	nested, ok := out["nested"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{129.5, 129.5}, nested["amounts"])

	assert.Equal(t, []interface{}{"x", 129.5}, out["raw"])
}

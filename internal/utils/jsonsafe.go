package utils

import (
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JSONSafe convertit récursivement une structure en représentations JSON
// natives : décimaux → float64, dates → chaînes ISO-8601, identifiants
// uniques → chaînes, ensembles → slices triées. Les maps, slices et types
// BSON bruts sortis de Cosmos sont traversés récursivement.
func JSONSafe(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return t.String()
		}
		return f
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC().Format(time.RFC3339)
	case primitive.ObjectID:
		return t.Hex()
	case uuid.UUID:
		return t.String()
	case bson.M:
		return jsonSafeMap(t)
	case map[string]interface{}:
		return jsonSafeMap(t)
	case primitive.A:
		return jsonSafeSlice(t)
	case []interface{}:
		return jsonSafeSlice(t)
	case map[string]struct{}:
		// Ensemble de chaînes → slice triée pour une sortie stable
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]interface{}, len(keys))
		for i, k := range keys {
			out[i] = k
		}
		return out
	default:
		return v
	}
}

func jsonSafeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = JSONSafe(v)
	}
	return out
}

func jsonSafeSlice(s []interface{}) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = JSONSafe(v)
	}
	return out
}

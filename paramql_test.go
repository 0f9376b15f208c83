package paramql

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraunhofer-iese/paramql/internal/goquadapter"
)

func userEntity() Entity {
	return NewEntity("users",
		Association{Name: "current_version", Table: "current_version", On: "%[1]s.user_id = users.id"},
		Association{Name: "org", Table: "organizations", On: "%[1]s.id = users.org_id"},
	)
}

func videoEntity() Entity {
	return NewEntity("videos")
}

func TestCompileNameEqAndDescendingAgeSort(t *testing.T) {
	q, err := Compile("name[eq]=Alice&sort=-age", userEntity(), Options{})
	require.NoError(t, err)
	assert.Contains(t, q.SQL, "WHERE TRUE AND name = $1")
	assert.Contains(t, q.SQL, "ORDER BY age DESC")
	assert.Contains(t, q.SQL, "LIMIT 10")
	assert.Equal(t, []interface{}{"Alice"}, q.Args)
}

func TestCompileIsPermutationInvariant(t *testing.T) {
	a, err := Compile("name[eq]=Alice&age[gte]=30", userEntity(), Options{})
	require.NoError(t, err)
	b, err := Compile("age[gte]=30&name[eq]=Alice", userEntity(), Options{})
	require.NoError(t, err)
	assert.Equal(t, a.SQL, b.SQL)
	assert.Equal(t, a.Args, b.Args)
}

func TestMapSafeDecodesOpaqueUserID(t *testing.T) {
	spec := NewMapperSpec().Field("user_id", func(v interface{}) (interface{}, error) {
		s, _ := v.(string)
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		return id.String(), nil
	})

	valid := uuid.New().String()
	out, err := MapSafe("user_id[eq]="+valid, spec)
	require.NoError(t, err)
	assert.Equal(t, valid, out["user_id[eq]"])
}

func TestMapSafeReportsDecodeFailureAsTransformationFailed(t *testing.T) {
	spec := NewMapperSpec().Field("user_id", func(v interface{}) (interface{}, error) {
		s, _ := v.(string)
		if _, err := uuid.Parse(s); err != nil {
			return nil, errors.New("not a valid id")
		}
		return v, nil
	})

	_, err := MapSafe("user_id[eq]=not-a-uuid", spec)
	var tf *TransformationFailed
	require.True(t, errors.As(err, &tf))
	assert.Equal(t, "not a valid id", tf.Reason)
}

func TestDecodeQueryStringThenMapSafeEquivalentToDirectMap(t *testing.T) {
	spec := NewMapperSpec().Field("name", Identity)
	raw := "name[eq]=Bob&age[gte]=21"

	viaString, err := MapSafe(raw, spec)
	require.NoError(t, err)

	decoded := DecodeQueryString(raw)
	viaDecoded, err := MapSafe(decoded, spec)
	require.NoError(t, err)

	assert.Equal(t, viaString, viaDecoded)
}

func TestCompileJsonbContainsOnVideoTags(t *testing.T) {
	q, err := Compile("metadata.tags[contains]=drone", videoEntity(), Options{})
	require.NoError(t, err)
	assert.Contains(t, q.SQL, `metadata->>'tags' ILIKE $1`)
	assert.Equal(t, []interface{}{"%drone%"}, q.Args)
}

func TestCompileJoinDedupesSingleJoinClausePerAssociation(t *testing.T) {
	q, err := Compile(
		"current_version:status[eq]=active&current_version:reviewed[true]=true",
		userEntity(),
		Options{Joins: []string{"current_version"}},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, countOccurrences(q.SQL, "INNER JOIN current_version current_version"))
	assert.Contains(t, q.SQL, "current_version.status = $1")
	assert.Contains(t, q.SQL, "current_version.reviewed = TRUE")
}

func TestCompileNonWhitelistedJoinErrorsBeforeBuildingAnything(t *testing.T) {
	_, err := Compile("org:name[eq]=Acme", userEntity(), Options{Joins: []string{"current_version"}})
	var jna *JoinNotAllowed
	require.True(t, errors.As(err, &jna))
	assert.Equal(t, "org", jna.Assoc)
}

func TestMapSafeDropsEmptyJoinJsonbValueWithoutInvokingTransformer(t *testing.T) {
	called := false
	spec := NewMapperSpec().Field("flow_input", func(v interface{}) (interface{}, error) {
		called = true
		return v, nil
	})
	out, err := MapSafe(map[string]interface{}{
		"current_version:flow_input.prompt[contains]": "",
		"name[eq]": "Alice",
	}, spec)
	require.NoError(t, err)
	assert.False(t, called)
	_, present := out["current_version:flow_input.prompt[contains]"]
	assert.False(t, present)
	assert.Equal(t, "Alice", out["name[eq]"])
}

func TestCompileSearchBuildsTsquery(t *testing.T) {
	q, err := Compile("bio[search]=bear cat", userEntity(), Options{})
	require.NoError(t, err)
	assert.Contains(t, q.SQL, "bio @@ to_tsquery('simple', $1)")
	assert.Equal(t, []interface{}{"bear:* & cat:*"}, q.Args)
}

func TestFilterIsRightBiasedOnConflictingKeys(t *testing.T) {
	out := Filter("org_id[eq]=1", map[string]interface{}{"org_id[eq]": "enforced"})
	assert.Equal(t, "enforced", out["org_id[eq]"])
}

func TestFilterThenMapSafeThenCompilePipeline(t *testing.T) {
	filtered := Filter("name[eq]=Alice", map[string]interface{}{"org_id[eq]": "7"})
	spec := NewMapperSpec().Field("name", Identity).Field("org_id", Identity)
	mapped, err := MapSafe(filtered, spec)
	require.NoError(t, err)

	q, err := Compile(mapped, userEntity(), Options{})
	require.NoError(t, err)
	assert.Contains(t, q.SQL, "name = $1")
	assert.Contains(t, q.SQL, "org_id = $2")
	assert.ElementsMatch(t, []interface{}{"Alice", "7"}, q.Args)
}

func TestCompileBothStartAndNegStartIsAssemblyError(t *testing.T) {
	_, err := Compile("start=5&-start=9", userEntity(), Options{})
	var ae *AssemblyError
	require.True(t, errors.As(err, &ae))
}

func TestCompileInvalidLimitIsAssemblyError(t *testing.T) {
	_, err := Compile("limit=abc", userEntity(), Options{})
	var ae *AssemblyError
	require.True(t, errors.As(err, &ae))
}

func TestCompileUnknownOperatorOnJsonbIsInvalidConstraint(t *testing.T) {
	_, err := Compile("metadata.tags[neq]=drone", videoEntity(), Options{})
	var ic *InvalidConstraint
	require.True(t, errors.As(err, &ic))
}

func TestCompileIsAgnosticToTheBuilderRuntime(t *testing.T) {
	q, err := Compile("name[eq]=Alice", userEntity(), Options{Builder: goquadapter.Factory{}})
	require.NoError(t, err)
	assert.Contains(t, q.SQL, `FROM "users"`)
	assert.Equal(t, []interface{}{"Alice"}, q.Args)
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
			i += len(needle) - 1
		}
	}
	return count
}

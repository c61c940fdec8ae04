package sheet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNumberValue_IntegralBecomesInt(t *testing.T) {
	v := NumberValue(7)
	assert.Equal(t, KindInt, v.Kind())
	i, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(7), i)
}

func TestNumberValue_FractionStaysFloat(t *testing.T) {
	v := NumberValue(4.2)
	assert.Equal(t, KindFloat, v.Kind())
	f, ok := v.Float()
	require.True(t, ok)
	assert.InDelta(t, 4.2, f, 1e-12)
}

func TestValue_ZeroIsEmpty(t *testing.T) {
	var v Value
	assert.True(t, v.IsEmpty())
	assert.Nil(t, v.Native())
	assert.Equal(t, "", v.String())
	assert.False(t, StringValue("").IsEmpty(), "an explicit empty string is text")
}

func TestValue_Comparable(t *testing.T) {
	assert.Equal(t, StringValue("cat"), StringValue("cat"))
	assert.NotEqual(t, StringValue("7"), IntValue(7))

	groups := map[Value][]string{}
	groups[StringValue("cat")] = append(groups[StringValue("cat")], "a.ods")
	groups[StringValue("cat")] = append(groups[StringValue("cat")], "b.ods")
	assert.Len(t, groups, 1)
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "abc", StringValue("abc").String())
	assert.Equal(t, "42", IntValue(42).String())
	assert.Equal(t, "4.2", FloatValue(4.2).String())
	assert.Equal(t, "true", BoolValue(true).String())
}

func TestValue_MarshalYAML(t *testing.T) {
	doc := map[string][]Value{
		"words": {IntValue(42), StringValue("42"), StringValue("héllo"), FloatValue(4.5), {}},
	}
	out, err := yaml.Marshal(doc)
	require.NoError(t, err)

	var back map[string][]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, []any{42, "42", "héllo", 4.5, nil}, back["words"])
}

func TestValue_MarshalJSON(t *testing.T) {
	out, err := json.Marshal([]Value{IntValue(3), StringValue("x"), BoolValue(false), {}})
	require.NoError(t, err)
	assert.JSONEq(t, `[3, "x", false, null]`, string(out))
}

package utils_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-school-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	values := utils.Query(map[string]any{
		"school_id": 7,
		"class_id":  0,
		"board_id":  utils.Ptr(3),
		"name":      "",
		"page":      (*int)(nil),
		"user_name": utils.Ptr("teacher1"),
		"unset":     nil,
	})

	require.Equal(t, "7", values.Get("school_id"))
	require.Equal(t, "3", values.Get("board_id"))
	require.Equal(t, "teacher1", values.Get("user_name"))
	require.False(t, values.Has("class_id"))
	require.False(t, values.Has("name"))
	require.False(t, values.Has("page"))
	require.False(t, values.Has("unset"))
}

func TestValueAndPtr(t *testing.T) {
	require.Equal(t, -1, utils.Deref[int](nil, -1))
	require.Equal(t, "x", utils.Deref(utils.Ptr("x"), ""))
}

func TestFlexInt(t *testing.T) {
	var v struct {
		A utils.FlexInt `json:"a"`
		B utils.FlexInt `json:"b"`
		C utils.FlexInt `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":31,"b":"42","c":null}`), &v))
	require.Equal(t, utils.FlexInt(31), v.A)
	require.Equal(t, utils.FlexInt(42), v.B)
	require.Equal(t, utils.FlexInt(0), v.C)

	require.Error(t, json.Unmarshal([]byte(`{"a":"x"}`), &v))
}

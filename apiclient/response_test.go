package apiclient_test

import (
	"testing"

	"github.com/jrsteele09/go-school-client/apiclient"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestDecodeField(t *testing.T) {
	resp := &apiclient.Response{Body: []byte(`{"schools":[{"school_id":1},{"school_id":2}],"user":null,"message":"ok"}`)}

	type school struct {
		SchoolID int `json:"school_id"`
	}
	schools, err := apiclient.DecodeField[[]school](resp, "schools")
	require.NoError(t, err)
	require.Equal(t, []school{{1}, {2}}, schools)

	_, err = apiclient.DecodeField[map[string]any](resp, "user")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = apiclient.DecodeField[[]school](resp, "classes")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = apiclient.DecodeField[int](resp, "message")
	require.ErrorIs(t, err, apperrors.ErrInternal)

	msg, err := apiclient.DecodeMessage(resp)
	require.NoError(t, err)
	require.Equal(t, "ok", msg)
}

func TestDecodeField_NotAnObject(t *testing.T) {
	resp := &apiclient.Response{Body: []byte(`[{"id":1,"name":"Maths"}]`)}
	_, err := apiclient.DecodeField[[]any](resp, "data")
	require.ErrorIs(t, err, apperrors.ErrInternal)
}

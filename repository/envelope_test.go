package repository

import (
	"errors"
	"testing"

	"storegate/entities"
	"storegate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeList_BareArray(t *testing.T) {
	var cats []entities.Category
	err := DecodeList([]byte(`[{"id":2,"name":"B"}]`), "categories", &cats)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, 2, cats[0].Id)
	assert.Equal(t, "B", cats[0].Name)
}

func TestDecodeList_DirectArrayEnvelope(t *testing.T) {
	body := []byte(`{"success":true,"data":{"categories":[{"id":1,"name":"A"},{"id":2,"name":"B"}]}}`)
	var cats []entities.Category
	err := DecodeList(body, "categories", &cats)
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestDecodeList_ValuesWrapper(t *testing.T) {
	body := []byte(`{"success":true,"data":{"categories":{"$id":"1","$values":[{"id":1,"name":"A"}]}}}`)
	var cats []entities.Category
	err := DecodeList(body, "categories", &cats)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "A", cats[0].Name)
}

func TestDecodeList_FailureEnvelope(t *testing.T) {
	var cats []entities.Category
	err := DecodeList([]byte(`{"success":false,"message":"x"}`), "categories", &cats)
	require.Error(t, err)
	assert.Equal(t, "x", err.Error())
	assert.True(t, errors.Is(err, models.ErrBadRequest))
	assert.Empty(t, cats)
}

func TestDecodeList_MissingFieldDegradesToEmpty(t *testing.T) {
	cats := []entities.Category{{Id: 9}}
	err := DecodeList([]byte(`{"success":true,"data":{"somethingElse":1}}`), "categories", &cats)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestDecodeList_NullDataDegradesToEmpty(t *testing.T) {
	var prods []entities.Product
	err := DecodeList([]byte(`{"success":true}`), "products", &prods)
	require.NoError(t, err)
	assert.Empty(t, prods)
}

func TestDecodeList_GarbageBody(t *testing.T) {
	var cats []entities.Category
	err := DecodeList([]byte(`<html>gateway timeout</html>`), "categories", &cats)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrServerError))
}

func TestDecodeItem_NestedThenFlat(t *testing.T) {
	var user entities.User
	err := DecodeItem([]byte(`{"success":true,"data":{"user":{"id":5,"email":"u@e.x"}}}`), "user", &user)
	require.NoError(t, err)
	assert.Equal(t, 5, user.Id)

	var user2 entities.User
	err = DecodeItem([]byte(`{"success":true,"user":{"id":6}}`), "user", &user2)
	require.NoError(t, err)
	assert.Equal(t, 6, user2.Id)

	var user3 entities.User
	err = DecodeItem([]byte(`{"success":true,"data":{"id":7}}`), "user", &user3)
	require.NoError(t, err)
	assert.Equal(t, 7, user3.Id)
}

func TestCheckEnvelope(t *testing.T) {
	assert.NoError(t, CheckEnvelope([]byte(`{"success":true}`)))
	assert.NoError(t, CheckEnvelope([]byte(``)))
	assert.NoError(t, CheckEnvelope([]byte(`17`)))

	err := CheckEnvelope([]byte(`{"success":false,"message":"no"}`))
	require.Error(t, err)
	assert.Equal(t, "no", err.Error())
}

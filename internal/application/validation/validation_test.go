package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/validation"
	"github.com/jhoicas/Inventario-ai/internal/domain"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/filter"
)

const validCategoryID = "9b2f5a52-5a0e-4c43-9a53-0d7c1f7b8e11"

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "se esperaba *validation.Error, llegó %v", err)
	return verr.Fields
}

func TestDecodeJSON_ItemValido(t *testing.T) {
	body := []byte(`{"name":"HDMI cable","quantity":12,"categoryId":"` + validCategoryID + `",
		"status":"in_stock","sku":"HD-1","unit_cost":"3.50","reorder_threshold":5}`)

	var req dto.CreateItemRequest
	require.NoError(t, validation.DecodeJSON(body, &req))
	assert.Equal(t, 12, *req.Quantity)
	assert.Equal(t, "3.5", req.UnitCost.String())
}

func TestDecodeJSON_ReportaCadaCampo(t *testing.T) {
	body := []byte(`{"name":"x","quantity":-1,"categoryId":"nope","status":"lost","unit_cost":-2}`)

	var req dto.CreateItemRequest
	err := validation.DecodeJSON(body, &req)

	fields := fieldsOf(t, err)
	assert.Equal(t, "min=2", fields["name"])
	assert.Equal(t, "min=0", fields["quantity"])
	assert.Equal(t, "uuid", fields["categoryId"])
	assert.Equal(t, "oneof=in_stock low_stock ordered discontinued", fields["status"])
	assert.Equal(t, "min=0", fields["unit_cost"])
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestDecodeJSON_CantidadNoEntera(t *testing.T) {
	var req dto.CreateItemRequest
	err := validation.DecodeJSON([]byte(`{"name":"abc","quantity":2.5}`), &req)

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "quantity")
}

func TestDecodeJSON_CuerpoMalformado(t *testing.T) {
	var req dto.CreateItemRequest
	fields := fieldsOf(t, validation.DecodeJSON([]byte(`{"name":`), &req))
	assert.Equal(t, "invalid_json", fields["body"])
}

func TestDecodeJSON_PatchParcial(t *testing.T) {
	var req dto.UpdateItemRequest
	require.NoError(t, validation.DecodeJSON([]byte(`{"quantity":0}`), &req))
	require.NotNil(t, req.Quantity)
	assert.Nil(t, req.Name)

	fields := fieldsOf(t, validation.DecodeJSON([]byte(`{"name":"a"}`), &dto.UpdateItemRequest{}))
	assert.Equal(t, "min=2", fields["name"])
}

func TestStruct_CategoriaRecortaNombre(t *testing.T) {
	req := dto.CategoryRequest{Name: "  Tools  "}
	require.NoError(t, validation.Struct(&req))
	assert.Equal(t, "Tools", req.Name)

	blank := dto.CategoryRequest{Name: "   "}
	fields := fieldsOf(t, validation.Struct(&blank))
	assert.Equal(t, "required", fields["name"])
}

func TestStruct_Invitacion(t *testing.T) {
	req := dto.InviteRequest{Email: "not-an-email", Role: "owner"}
	fields := fieldsOf(t, validation.Struct(&req))
	assert.Equal(t, "email", fields["email"])
	assert.Equal(t, "oneof=admin manager viewer", fields["role"])
}

func TestListQuery_ValoresPorDefecto(t *testing.T) {
	f, limit, err := validation.ListQuery(dto.ListItemsQuery{})
	require.NoError(t, err)
	assert.Equal(t, filter.SortByUpdatedAt, f.SortBy)
	assert.Equal(t, filter.Desc, f.SortDir)
	assert.Zero(t, limit)
	assert.False(t, f.LowStockOnly)
}

func TestListQuery_Conversiones(t *testing.T) {
	f, limit, err := validation.ListQuery(dto.ListItemsQuery{
		Status:       "ordered",
		MaxQuantity:  "10",
		LowStockOnly: "true",
		SortBy:       "name",
		SortDir:      "asc",
		Limit:        "30",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOrdered, f.Status)
	require.NotNil(t, f.MaxQuantity)
	assert.Equal(t, 10, *f.MaxQuantity)
	assert.True(t, f.LowStockOnly)
	assert.Equal(t, 30, limit)
}

func TestListQuery_Invalida(t *testing.T) {
	_, _, err := validation.ListQuery(dto.ListItemsQuery{
		CategoryID:  "123",
		MaxQuantity: "-4",
		SortBy:      "price",
	})
	fields := fieldsOf(t, err)
	assert.Equal(t, "uuid", fields["categoryId"])
	assert.Equal(t, "number", fields["maxQuantity"])
	assert.Equal(t, "oneof=name quantity updated_at category", fields["sortBy"])
}

func TestFilterSet(t *testing.T) {
	neg := -1
	err := validation.FilterSet(filter.Set{Status: "lost", MaxQuantity: &neg})
	fields := fieldsOf(t, err)
	assert.Equal(t, "oneof", fields["status"])
	assert.Equal(t, "min=0", fields["maxQuantity"])

	assert.NoError(t, validation.FilterSet(filter.Set{Status: entity.StatusLowStock, SortBy: filter.SortByCategory}))
}

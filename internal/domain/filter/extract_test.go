package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/filter"
)

func TestExtract_EscenarioCompleto(t *testing.T) {
	got := filter.Extract("show low stock electronics from warehouse A under 10 units")

	assert.Equal(t, "warehouse A", got.Location)
	assert.True(t, got.LowStockOnly)
	assert.Equal(t, entity.StatusLowStock, got.Status)
	require.NotNil(t, got.MaxQuantity)
	assert.Equal(t, 10, *got.MaxQuantity)
	assert.Empty(t, got.Q)
	assert.Empty(t, got.Category, "el extractor no deduce categorías")
}

func TestExtract_UltimaFraseDeEstadoGana(t *testing.T) {
	cases := []struct {
		text string
		want entity.ItemStatus
	}{
		{"low stock items", entity.StatusLowStock},
		{"low stock or discontinued", entity.StatusDiscontinued},
		{"discontinued or ordered", entity.StatusOrdered},
		{"ordered but in stock", entity.StatusInStock},
		{"in stock and discontinued", entity.StatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, filter.Extract(tc.text).Status)
		})
	}
}

func TestExtract_LowStockSeMantieneConOtroEstado(t *testing.T) {
	got := filter.Extract("low stock but discontinued")
	assert.True(t, got.LowStockOnly)
	assert.Equal(t, entity.StatusDiscontinued, got.Status)
}

func TestExtract_CantidadMaxima(t *testing.T) {
	for _, text := range []string{"items below 7", "Less Than 7 units", "UNDER 7"} {
		got := filter.Extract(text)
		require.NotNil(t, got.MaxQuantity, text)
		assert.Equal(t, 7, *got.MaxQuantity, text)
	}
	assert.Nil(t, filter.Extract("under ten").MaxQuantity)
}

func TestExtract_UbicacionConservaMayusculas(t *testing.T) {
	assert.Equal(t, "Warehouse North-2", filter.Extract("stock In Warehouse North-2 please").Location)
	assert.Empty(t, filter.Extract("in the warehouse").Location)
}

func TestExtract_TextoSinSenales(t *testing.T) {
	assert.True(t, filter.Extract("what do we have?").IsZero())
}

func TestExtract_EsPura(t *testing.T) {
	text := "ordered items in warehouse b-3 under 4"
	assert.Equal(t, filter.Extract(text), filter.Extract(text))
}

func TestOverlay_ValoresDeterministasGanan(t *testing.T) {
	five := 5
	model := filter.Set{
		Q:           "cable",
		Status:      entity.StatusInStock,
		Location:    "warehouse Z",
		MaxQuantity: &five,
		SortBy:      filter.SortByName,
	}
	det := filter.Extract("low stock from warehouse A under 10")

	got := filter.Overlay(model, det)

	assert.Equal(t, "cable", got.Q, "los campos que det no fija vienen del modelo")
	assert.Equal(t, filter.SortByName, got.SortBy)
	assert.Equal(t, entity.StatusLowStock, got.Status)
	assert.Equal(t, "warehouse A", got.Location)
	require.NotNil(t, got.MaxQuantity)
	assert.Equal(t, 10, *got.MaxQuantity)
	assert.True(t, got.LowStockOnly)
	assert.Equal(t, 5, five, "Overlay no muta la entrada")
}

func TestFallback(t *testing.T) {
	det := filter.Extract("anything below 3")
	in := filter.Fallback("anything below 3", det)
	assert.Equal(t, filter.ActionCountLowStock, in.Action)
	assert.True(t, in.Filters.LowStockOnly)
	assert.Equal(t, entity.StatusLowStock, in.Filters.Status)
	assert.Equal(t, filter.DefaultLimit, in.Limit)
	assert.Equal(t, filter.SourceFallback, in.Source)

	in = filter.Fallback("list cables", filter.Set{})
	assert.Equal(t, filter.ActionListItems, in.Action)
	assert.True(t, in.Filters.IsZero())
}

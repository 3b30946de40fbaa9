// Package criteria describe una consulta de ítems como valor independiente del almacenamiento.
// Cada driver (SQL, memoria) traduce los predicados a su propio lenguaje.
package criteria

// Field columna consultable de un ítem.
type Field string

const (
	FieldID         Field = "id"
	FieldName       Field = "name"
	FieldSKU        Field = "sku"
	FieldLocation   Field = "location"
	FieldSupplier   Field = "supplier"
	FieldStatus     Field = "status"
	FieldCategoryID Field = "category_id"
	FieldCategory   Field = "category"
	FieldQuantity   Field = "quantity"
	FieldUpdatedAt  Field = "updated_at"
)

// Predicate condición sobre un campo. Variantes: Contains, Equals, NotEquals, AtMost.
type Predicate interface {
	Target() Field
	predicate()
}

// Contains coincidencia de subcadena sin distinguir mayúsculas.
type Contains struct {
	Field Field
	Value string
}

// Equals igualdad exacta.
type Equals struct {
	Field Field
	Value string
}

// NotEquals desigualdad exacta.
type NotEquals struct {
	Field Field
	Value string
}

// AtMost campo numérico <= Value.
type AtMost struct {
	Field Field
	Value int
}

func (p Contains) Target() Field  { return p.Field }
func (p Equals) Target() Field    { return p.Field }
func (p NotEquals) Target() Field { return p.Field }
func (p AtMost) Target() Field    { return p.Field }

func (Contains) predicate()  {}
func (Equals) predicate()    {}
func (NotEquals) predicate() {}
func (AtMost) predicate()    {}

// Order clave de orden primaria. El desempate por id ascendente lo aplica cada driver.
type Order struct {
	Field Field
	Desc  bool
}

// DefaultOrder updated_at descendente.
var DefaultOrder = Order{Field: FieldUpdatedAt, Desc: true}

// Query conjunción de predicados, orden y límite. Limit 0 = sin límite.
type Query struct {
	Predicates []Predicate
	Order      Order
	Limit      int
}

// All consulta sin predicados con el orden por defecto.
func All() Query {
	return Query{Order: DefaultOrder}
}

// Where agrega predicados y devuelve la consulta.
func (q Query) Where(p ...Predicate) Query {
	q.Predicates = append(append([]Predicate(nil), q.Predicates...), p...)
	return q
}

// Equality devuelve el valor de la única igualdad sobre f, si existe.
func (q Query) Equality(f Field) (string, bool) {
	for _, p := range q.Predicates {
		if eq, ok := p.(Equals); ok && eq.Field == f {
			return eq.Value, true
		}
	}
	return "", false
}

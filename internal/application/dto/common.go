package dto

// ErrorResponse cuerpo de error HTTP. Details lleva el detalle por campo de las validaciones.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse respuesta de operaciones sin cuerpo (delete, cambio de rol).
type SuccessResponse struct {
	Success bool `json:"success"`
}

// DataResponse envoltorio {data: ...} de las respuestas de lectura y escritura.
type DataResponse struct {
	Data interface{} `json:"data"`
}

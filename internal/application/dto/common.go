package dto

// ErrorResponse cuerpo de error HTTP. ValidationErrors va poblado solo cuando
// el comando falló por validación de campos (acumulada, no al primer error).
type ErrorResponse struct {
	Code             string   `json:"code"`
	Message          string   `json:"message"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}

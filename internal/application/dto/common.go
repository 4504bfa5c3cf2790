package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeleteResponse resultado de un borrado: false cuando la entidad no existía.
type DeleteResponse struct {
	Success bool `json:"success"`
}

package dto

import "encoding/json"

// Envelope es el contrato uniforme de todas las respuestas de la API:
// { success, data?, error?, message? }.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK construye un envelope exitoso con datos.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage construye un envelope exitoso con datos y mensaje informativo.
func OKMessage(data interface{}, msg string) Envelope {
	return Envelope{Success: true, Data: data, Message: msg}
}

// Fail construye un envelope de error.
func Fail(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}

// NullString distingue en un patch JSON entre campo ausente (no tocar),
// null explícito (limpiar) y string (asignar). Un *string solo cubre los dos
// últimos casos del lado del valor, pero confunde ausente con null.
type NullString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON solo se invoca cuando la clave está presente en el cuerpo;
// "null" llega con Set=true y Value=nil.
func (n *NullString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

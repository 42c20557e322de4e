// Package json renders results as indented JSON documents
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/style"
)

// Renderer writes one JSON document per call
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}, nil
}

// RenderResult encodes the result as is
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

type errorDocument struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    errors.ErrorCode       `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RenderError encodes the error code, message and details
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(errorDocument{Error: errorBody{
		Code:    errors.GetErrorCode(err),
		Message: errors.Message(err),
		Details: errors.GetErrorDetails(err),
	}})
}

// RenderMessage encodes a message with markup removed
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": style.Strip(msg)})
}

package api

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/reeltrack/reeltrack-server/internal/http/response"
)

// EnvelopeTransformer wraps every huma response body in the versioned
// envelope. Errors become {v, success: false, error, code, message, details};
// everything else becomes {v, success: true, data}.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	switch body := v.(type) {
	case *APIError:
		return response.Failure(body.Code, body.Message, body.Details), nil
	case response.Envelope, response.ErrorEnvelope:
		return v, nil
	default:
		return response.Success(v), nil
	}
}

// Package dto provides the JSON bodies of the console endpoints.
package dto

import (
	"github.com/allisson/gatewayconsole/internal/console"
	gatewayDTO "github.com/allisson/gatewayconsole/internal/gateway/http/dto"
)

// EditFormResponse is the model handed to the browser form renderer.
type EditFormResponse struct {
	InitialValues gatewayDTO.GatewayResponse `json:"initial_values"`
	Disabled      bool                       `json:"disabled"`
	Update        bool                       `json:"update"`
}

// MapFormPropsToResponse converts rendered form props into the response body.
func MapFormPropsToResponse(props console.FormProps) EditFormResponse {
	return EditFormResponse{
		InitialValues: gatewayDTO.MapGatewayToResponse(props.InitialValues),
		Disabled:      props.Disabled,
		Update:        props.Update,
	}
}

// RedirectResponse tells the browser where to go after a successful submission.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

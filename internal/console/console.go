// Package console implements the gateway edit workflow of the admin console:
// render the form with an authorization derived disabled flag, dispatch the
// submitted gateway to the store and navigate to the detail page once the
// update has been persisted.
package console

import (
	"context"
	"fmt"

	"github.com/allisson/gatewayconsole/internal/authz"
	gatewayDomain "github.com/allisson/gatewayconsole/internal/gateway/domain"
)

// GatewayStore persists update requests asynchronously. Update returns a
// channel closed once the request has settled. onSuccess runs before the
// channel is closed and only when the update succeeded; failures are reported
// by the store itself.
type GatewayStore interface {
	Update(ctx context.Context, req *gatewayDomain.UpdateGatewayRequest, onSuccess func()) <-chan struct{}
}

// Navigator moves the current view to path.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// Notifier surfaces a failed update to the user.
type Notifier interface {
	Notify(ctx context.Context, err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, err error)

// Notify calls f(ctx, err).
func (f NotifierFunc) Notify(ctx context.Context, err error) {
	f(ctx, err)
}

// DetailPath returns the detail view of a gateway.
func DetailPath(gateway *gatewayDomain.Gateway) string {
	return fmt.Sprintf("/tenants/%s/gateways/%s", gateway.TenantID, gateway.ID)
}

// FormProps is what the form renderer receives.
type FormProps struct {
	InitialValues *gatewayDomain.Gateway
	Disabled      bool
	// Update is always true: the form edits an existing gateway.
	Update   bool
	OnFinish func(ctx context.Context, edited *gatewayDomain.Gateway) <-chan struct{}
}

// EditGateway is the edit workflow for one gateway and one actor.
type EditGateway struct {
	gateway   *gatewayDomain.Gateway
	session   authz.Session
	store     GatewayStore
	navigator Navigator
}

// NewEditGateway creates an edit workflow. gateway is the stored record shown
// as the form's initial values.
func NewEditGateway(
	gateway *gatewayDomain.Gateway,
	session authz.Session,
	store GatewayStore,
	navigator Navigator,
) *EditGateway {
	return &EditGateway{
		gateway:   gateway,
		session:   session,
		store:     store,
		navigator: navigator,
	}
}

// Render builds the form props. The form is disabled when the session may not
// edit gateways of the record's tenant. Submission is not blocked here; the
// gateway service checks again.
func (e *EditGateway) Render() FormProps {
	disabled := true
	if e.gateway != nil {
		disabled = !authz.CanEditGateway(e.session, e.gateway.TenantID)
	}

	return FormProps{
		InitialValues: e.gateway,
		Disabled:      disabled,
		Update:        true,
		OnFinish:      e.OnFinish,
	}
}

// OnFinish sends exactly one update request wrapping edited as submitted and
// navigates to its detail page if the update succeeds. Every call dispatches
// a new request.
func (e *EditGateway) OnFinish(ctx context.Context, edited *gatewayDomain.Gateway) <-chan struct{} {
	req := &gatewayDomain.UpdateGatewayRequest{Gateway: edited}

	return e.store.Update(ctx, req, func() {
		e.navigator.Navigate(DetailPath(edited))
	})
}

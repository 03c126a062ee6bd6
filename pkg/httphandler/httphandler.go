/*
httphandler exposes the chat assistant over HTTP: one endpoint for a
conversational turn (JSON or server-sent events), plus tool listing and
version endpoints.
*/
package httphandler

import (
	"errors"
	"net/http"

	// Packages
	server "github.com/mutablelogic/go-server"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"

	satai "github.com/satai-labs/go-satai"
	agent "github.com/satai-labs/go-satai/pkg/agent"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Router interface {
	RegisterFunc(path string, handler http.HandlerFunc, middleware bool, spec *openapi.PathItem) error
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func RegisterHandlers(manager *agent.Manager, router server.HTTPRouter, middleware bool) error {
	var result error

	// Convenience function to register a handler and accumulate any errors
	register := func(path string, handler http.HandlerFunc, spec *openapi.PathItem) {
		result = errors.Join(result, router.(Router).RegisterFunc(path, handler, middleware, spec))
	}

	// Register handlers
	register(ChatHandler(manager))
	register(ToolListHandler(manager))
	register(ToolGetHandler(manager))
	register(VersionHandler())

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts a satai.Err to an httpresponse.Err, preserving the
// original error message. Upstream failures map to 502, a missing
// credential to 500, unknown error codes to 500.
func httpErr(err error) error {
	var satErr satai.Err
	if !errors.As(err, &satErr) {
		return err
	}
	switch satErr {
	case satai.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case satai.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case satai.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case satai.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	case satai.ErrUpstream:
		return httpresponse.Err(http.StatusBadGateway).With(err)
	case satai.ErrMissingCredential:
		return httpresponse.ErrInternalError.With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}

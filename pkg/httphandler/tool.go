package httphandler

import (
	"encoding/json"
	"net/http"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"

	satai "github.com/satai-labs/go-satai"
	agent "github.com/satai-labs/go-satai/pkg/agent"
	schema "github.com/satai-labs/go-satai/pkg/schema"
	tool "github.com/satai-labs/go-satai/pkg/tool"
	version "github.com/satai-labs/go-satai/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /tool
func ToolListHandler(manager *agent.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/tool", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				resp, err := toolMeta(manager)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "List all registered tools",
			},
		})
}

// Path: /tool/{name}
func ToolGetHandler(manager *agent.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/tool/{name}", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				name := r.PathValue("name")
				t := manager.Toolkit().Lookup(name)
				if t == nil {
					_ = httpresponse.Error(w, httpErr(satai.ErrNotFound.Withf("tool not found: %q", name)))
					return
				}
				resp, err := meta(t)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Get a tool by name",
			},
		})
}

// Path: /version
func VersionHandler() (string, http.HandlerFunc, *openapi.PathItem) {
	return "/version", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), version.Map("satai"))
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Get version information",
			},
		})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// toolMeta returns the serialized definitions of all registered tools
func toolMeta(manager *agent.Manager) ([]schema.ToolMeta, error) {
	tools := manager.Toolkit().Tools()
	result := make([]schema.ToolMeta, 0, len(tools))
	for _, t := range tools {
		m, err := meta(t)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

// meta serializes one tool definition
func meta(t tool.Tool) (schema.ToolMeta, error) {
	s, err := t.Schema()
	if err != nil {
		return schema.ToolMeta{}, err
	}
	var data json.RawMessage
	if s != nil {
		data, err = json.Marshal(s)
		if err != nil {
			return schema.ToolMeta{}, err
		}
	}
	return schema.ToolMeta{
		Name:        t.Name(),
		Description: t.Description(),
		Schema:      data,
	}, nil
}

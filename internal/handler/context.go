package handler

import (
	"github.com/labstack/echo/v4"

	"recipebox/internal/auth"
	"recipebox/internal/service"
)

// ViewerContextKey is where the optional-auth middleware stashes the viewer.
const ViewerContextKey = "viewer"

// currentViewer resolves the viewer from the request context: either the
// optional-auth middleware set one, or the JWT middleware stored the parsed
// claims under "user". Anything else is anonymous.
func currentViewer(c echo.Context) service.Viewer {
	if v, ok := c.Get(ViewerContextKey).(service.Viewer); ok {
		return v
	}
	if claims, ok := c.Get("user").(*auth.Claims); ok {
		return service.Viewer{ID: claims.UserID, IsStaff: claims.IsStaff}
	}
	return service.Viewer{}
}

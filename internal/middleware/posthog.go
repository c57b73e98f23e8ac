package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// ClientIDHeader lets a front-end identify an installation for analytics.
// There are no user accounts, so events fall back to an anonymous id.
const ClientIDHeader = "X-Client-ID"

const anonymousDistinctID = "anonymous"

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
	"/":       true,
}

// PosthogMiddleware tracks successful mutating API calls as PostHog events.
// Event names come from the route pattern, e.g. POST /api/projects/:projectID/transactions
// becomes "post_api_projects_projectID_transactions".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodOptions {
			return
		}
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		route := c.FullPath()
		if route == "" {
			return
		}
		eventName := strings.ToLower(c.Request.Method) + "_" + strings.Trim(route, "/")
		eventName = strings.NewReplacer("/", "_", ":", "").Replace(eventName)

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}
		if requestID, ok := GetRequestIDFromContext(c); ok {
			props["request_id"] = requestID
		}

		posthogClient.Enqueue(distinctID(c), eventName, props)
	}
}

func distinctID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(ClientIDHeader)); id != "" {
		return id
	}
	return anonymousDistinctID
}

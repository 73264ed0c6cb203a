package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/evlive/admin-console/pkg/errors"
)

// ListEnvelope is the paginated collection contract every list
// endpoint returns.
type ListEnvelope struct {
	Message     string `json:"message"`
	Docs        any    `json:"docs"`
	TotalDocs   int    `json:"totalDocs"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	Limit       int    `json:"limit"`
}

// List sends a page of records with its pagination block.
func List(c *gin.Context, message string, docs any, totalDocs, page, limit int) {
	// An empty result set still reports one page so pagination
	// controls always have a valid current page to sit on.
	totalPages := 1
	if limit > 0 && totalDocs > limit {
		totalPages = (totalDocs + limit - 1) / limit
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, ListEnvelope{
		Message:     message,
		Docs:        docs,
		TotalDocs:   totalDocs,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
	})
}

// Record sends a single record under its resource key, e.g.
// {"message": ..., "event": {...}}.
func Record(c *gin.Context, status int, message, key string, record any) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, gin.H{"message": message, key: record})
}

// Message sends a bare acknowledgement.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// Error converts err to the common error contract. The message field
// is what clients surface to the operator.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"message": appErr.Message, "code": appErr.Code})
}

package httpapi

import (
	"errors"
	"net/http"

	"github.com/Alp4ka/catalogpager"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Problem types of the catalog API.
const (
	ProblemTypeBadRequest = "https://catalog.library/problems/bad-request"
	ProblemTypeNotFound   = "https://catalog.library/problems/not-found"
	ProblemTypeInternal   = "https://catalog.library/problems/internal-error"
)

// Problem is an RFC 7807 Problem Details body.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

var errInvalidParameter = errors.New("invalid parameter")

func writeProblem(c *gin.Context, p Problem) {
	c.Header("Content-Type", "application/problem+json")
	c.AbortWithStatusJSON(p.Status, p)
}

func badRequest(c *gin.Context, detail string) {
	writeProblem(c, Problem{
		Type:     ProblemTypeBadRequest,
		Title:    "Bad Request",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request.URL.Path,
	})
}

func notFound(c *gin.Context) {
	writeProblem(c, Problem{
		Type:     ProblemTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Instance: c.Request.URL.Path,
	})
}

func internalError(c *gin.Context) {
	writeProblem(c, Problem{
		Type:     ProblemTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Instance: c.Request.URL.Path,
	})
}

// fail answers err with the status of its class. Caller input errors are
// echoed back; configuration and storage errors are logged and hidden.
func (h *Handler) fail(c *gin.Context, err error) {
	if catalogpager.IsBadRequest(err) || errors.Is(err, errInvalidParameter) {
		badRequest(c, err.Error())
		return
	}

	h.logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Bool("configuration", errors.Is(err, catalogpager.ErrConfiguration)),
		zap.Error(err),
	)
	internalError(c)
}

package resource

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
	"github.com/mserebryaakov/aggregator-pim/internal/storage"
)

const (
	HeaderTotalCount = "X-Total-Count"
	HeaderLink       = "Link"
)

// Error codes carried in the "code" field of an error body.
const (
	CodeBadRequest   = "badrequest"
	CodeIDExists     = "idexists"
	CodeIDNull       = "idnull"
	CodeIDInvalid    = "idinvalid"
	CodeIDNotFound   = "idnotfound"
	CodeNotFound     = "notfound"
	CodeValidation   = "validation"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeInternal     = "internal"
)

// ErrorBody is written for every failed request.
type ErrorBody struct {
	Error       string              `json:"error"`
	Code        string              `json:"code"`
	FieldErrors []entity.FieldError `json:"fieldErrors,omitempty"`
}

// WriteError aborts the request with a structured JSON error.
func WriteError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message, Code: code})
}

// WriteValidation aborts with the field errors of a rejected record.
func WriteValidation(c *gin.Context, errs []entity.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{
		Error:       "validation failed",
		Code:        CodeValidation,
		FieldErrors: errs,
	})
}

// Fail maps storage errors to responses. Unknown errors are logged and
// hidden from the caller.
func Fail(c *gin.Context, log *logrus.Entry, err error) {
	var verr *entity.ValidationError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		WriteError(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.As(err, &verr):
		WriteValidation(c, verr.Fields)
	default:
		log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		WriteError(c, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}

// ParseID reads a numeric path parameter.
func ParseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteError(c, http.StatusBadRequest, CodeIDInvalid, "invalid id: "+raw)
		return 0, false
	}
	return id, true
}

// ParsePageable reads the zero-based page, the page size and every sort
// parameter from the query string.
func ParsePageable(c *gin.Context) storage.Pageable {
	p := storage.Pageable{Size: storage.DefaultPageSize}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.Page = n
		}
	}
	if v := c.Query("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Size = n
		}
	}
	if p.Size > storage.MaxPageSize {
		p.Size = storage.MaxPageSize
	}
	p.Sort = c.QueryArray("sort")
	return p
}

// SetPaginationHeaders writes X-Total-Count and a Link header with the
// next, prev, last and first pages.
func SetPaginationHeaders(c *gin.Context, p storage.Pageable, total int64) {
	c.Header(HeaderTotalCount, strconv.FormatInt(total, 10))

	last := int(math.Ceil(float64(total)/float64(p.Size))) - 1
	if last < 0 {
		last = 0
	}

	var links []string
	if p.Page < last {
		links = append(links, pageLink(c, p.Page+1, p.Size, "next"))
	}
	if p.Page > 0 {
		links = append(links, pageLink(c, p.Page-1, p.Size, "prev"))
	}
	links = append(links, pageLink(c, last, p.Size, "last"), pageLink(c, 0, p.Size, "first"))

	c.Header(HeaderLink, strings.Join(links, ","))
}

func pageLink(c *gin.Context, page, size int, rel string) string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	return fmt.Sprintf("<%s>; rel=\"%s\"", u.RequestURI(), rel)
}

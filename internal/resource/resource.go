// Package resource serves the generic REST endpoints shared by every entity.
package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
	"github.com/mserebryaakov/aggregator-pim/internal/storage"
)

type ResourceLogHook struct{}

func (h *ResourceLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Resource: " + entry.Message
	return nil
}

func (h *ResourceLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Record is an entity that is validated before it is stored.
type Record interface {
	entity.Entity
	entity.Validator
}

// Resource serves list, read, create, update, partial update and delete of
// one entity under /{path}.
type Resource[T Record] struct {
	name string
	path string
	repo *storage.Repository[T]
	log  *logrus.Entry
}

func New[T Record](name, path string, repo *storage.Repository[T], log *logrus.Entry) *Resource[T] {
	return &Resource[T]{
		name: name,
		path: "/" + path,
		repo: repo,
		log:  log,
	}
}

func (r *Resource[T]) Path() string {
	return r.path
}

// Register mounts every endpoint on group.
func (r *Resource[T]) Register(group *gin.RouterGroup) {
	r.RegisterRead(group)
	group.POST(r.path, r.Create)
	group.PUT(r.path+"/:id", r.Update)
	group.PATCH(r.path+"/:id", r.Patch)
	group.DELETE(r.path+"/:id", r.Delete)
}

// RegisterRead mounts only the list and read endpoints.
func (r *Resource[T]) RegisterRead(group *gin.RouterGroup) {
	group.GET(r.path, r.List)
	group.GET(r.path+"/:id", r.Get)
}

func (r *Resource[T]) List(c *gin.Context) {
	p := ParsePageable(c)

	items, total, err := r.repo.FindPage(c.Request.Context(), p)
	if err != nil {
		Fail(c, r.log, err)
		return
	}
	if items == nil {
		items = []T{}
	}

	SetPaginationHeaders(c, p, total)
	c.JSON(http.StatusOK, items)
}

func (r *Resource[T]) Get(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	rec, err := r.repo.Find(c.Request.Context(), id)
	if err != nil {
		Fail(c, r.log, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (r *Resource[T]) Create(c *gin.Context) {
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		WriteError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if _, ok := rec.Identifier(); ok {
		WriteError(c, http.StatusBadRequest, CodeIDExists, fmt.Sprintf("A new %s cannot already have an ID", r.name))
		return
	}
	if errs := rec.Validate(); len(errs) > 0 {
		WriteValidation(c, errs)
		return
	}

	if err := r.repo.Create(c.Request.Context(), &rec); err != nil {
		Fail(c, r.log, err)
		return
	}

	id, _ := rec.Identifier()
	r.log.Debugf("created %s %d", r.name, id)
	c.Header("Location", fmt.Sprintf("%s/%d", c.Request.URL.Path, id))
	r.respond(c, http.StatusCreated, id, rec)
}

func (r *Resource[T]) Update(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		WriteError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if !r.checkIdentity(c, id, rec.Identifier) {
		return
	}
	if errs := rec.Validate(); len(errs) > 0 {
		WriteValidation(c, errs)
		return
	}

	if err := r.repo.Save(c.Request.Context(), &rec); err != nil {
		Fail(c, r.log, err)
		return
	}
	r.respond(c, http.StatusOK, id, rec)
}

// Patch merges the non-null fields of the body onto the stored record.
func (r *Resource[T]) Patch(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		WriteError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	var body struct {
		ID int64 `json:"id"`
	}
	if raw, ok := patch["id"]; ok {
		if err := json.Unmarshal(raw, &body.ID); err != nil {
			WriteError(c, http.StatusBadRequest, CodeIDInvalid, "Invalid ID")
			return
		}
	}
	if !r.checkIdentity(c, id, func() (int64, bool) { return body.ID, body.ID != 0 }) {
		return
	}

	stored, err := r.repo.Find(c.Request.Context(), id)
	if err != nil {
		Fail(c, r.log, err)
		return
	}

	merged, err := json.Marshal(withoutNulls(patch))
	if err != nil {
		WriteError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if err := json.Unmarshal(merged, stored); err != nil {
		WriteError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if errs := (*stored).Validate(); len(errs) > 0 {
		WriteValidation(c, errs)
		return
	}

	if err := r.repo.Save(c.Request.Context(), stored); err != nil {
		Fail(c, r.log, err)
		return
	}
	r.respond(c, http.StatusOK, id, *stored)
}

func (r *Resource[T]) Delete(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	if err := r.repo.Delete(c.Request.Context(), id); err != nil {
		Fail(c, r.log, err)
		return
	}
	r.log.Debugf("deleted %s %d", r.name, id)
	c.Status(http.StatusNoContent)
}

// checkIdentity rejects bodies without an id, with an id other than the
// path id, or for records that do not exist.
func (r *Resource[T]) checkIdentity(c *gin.Context, id int64, identifier func() (int64, bool)) bool {
	bodyID, ok := identifier()
	if !ok {
		WriteError(c, http.StatusBadRequest, CodeIDNull, "Invalid id")
		return false
	}
	if bodyID != id {
		WriteError(c, http.StatusBadRequest, CodeIDInvalid, "Invalid ID")
		return false
	}

	exists, err := r.repo.Exists(c.Request.Context(), id)
	if err != nil {
		Fail(c, r.log, err)
		return false
	}
	if !exists {
		WriteError(c, http.StatusBadRequest, CodeIDNotFound, "Entity not found")
		return false
	}
	return true
}

// respond writes the stored record with its relations loaded, falling back
// to the record as received.
func (r *Resource[T]) respond(c *gin.Context, status int, id int64, rec T) {
	stored, err := r.repo.Find(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Warnf("failed to reload %s %d: %v", r.name, id, err)
		}
		c.JSON(status, rec)
		return
	}
	c.JSON(status, stored)
}

func withoutNulls(patch map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(patch))
	for k, v := range patch {
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			continue
		}
		out[k] = v
	}
	return out
}

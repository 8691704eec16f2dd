package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mauv0809/urban-bracket/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(apperr.NotFound("bracket does not exist")))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(apperr.Forbidden("blacklisted")))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(apperr.Conflict("already in queue")))
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(apperr.BadRequest("missing fields")))
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(errors.New("disk on fire")))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("join failed: %w", apperr.Conflict("already in queue"))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestMessageHidesInternalDetail(t *testing.T) {
	err := apperr.Internal("query users", errors.New("SQLITE_BUSY"))
	assert.Equal(t, "something went wrong", apperr.Message(err))
	// The wrapped cause is still there for logging.
	assert.Contains(t, err.Error(), "SQLITE_BUSY")
}

func TestMessageDomainErrors(t *testing.T) {
	assert.Equal(t, "not whitelisted", apperr.Message(apperr.Forbidden("not whitelisted")))
	assert.Equal(t, "not in queue", apperr.Message(apperr.NotFound("not in queue")))
}

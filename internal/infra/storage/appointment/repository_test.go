package appointment

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/pkg/pgerr"
)

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"exclusion", &pq.Error{Code: pgerr.CodeExclusionViolation}, ErrOverlap},
		{"foreign key", &pq.Error{Code: pgerr.CodeForeignKeyViolation}, ErrReferenceNotFound},
		{"serialization", &pq.Error{Code: pgerr.CodeSerializationFailure}, ErrTransient},
		{"deadlock", &pq.Error{Code: pgerr.CodeDeadlockDetected}, ErrTransient},
		{"other", errors.New("connection reset"), ErrExecQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapWriteError("op", tt.err), tt.want)
		})
	}
}

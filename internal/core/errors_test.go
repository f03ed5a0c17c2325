package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", validationError("bad upload", ErrBadExtension), KindValidation},
		{"decode", decodeError(errors.New("corrupt header")), KindDecode},
		{"persistence", persistenceError("commit transaction", errors.New("broken pipe")), KindPersistence},
		{"staging", stagingError("stage upload", errors.New("disk full")), KindStaging},
		{"wrapped", fmt.Errorf("ingest: %w", decodeError(errors.New("x"))), KindDecode},
		{"foreign error", errors.New("something else"), KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "decode", KindDecode.String())
	assert.Equal(t, "persistence", KindPersistence.String())
	assert.Equal(t, "staging", KindStaging.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestErrorMessage(t *testing.T) {
	err := persistenceError("begin transaction", errors.New("connection refused"))
	assert.Equal(t, "begin transaction: connection refused", err.Error())

	bare := &Error{Kind: KindValidation, Msg: "file too large"}
	assert.Equal(t, "file too large", bare.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := stagingError("stage upload", cause)
	assert.ErrorIs(t, err, cause)
}

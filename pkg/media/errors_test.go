package media

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minvt/Ext-Gap-Media/pkg/bridge"
)

func TestMediaError_Formatting(t *testing.T) {
	err := NewMediaError(ErrorCodeSrcEmpty, "handle-1", "src не может быть пустым")
	assert.Contains(t, err.Error(), "handle-1")
	assert.Contains(t, err.Error(), "src не может быть пустым")

	// Без handle id формат короче
	err = NewMediaError(ErrorCodeBridgeMissing, "", "мост не может быть nil")
	assert.NotContains(t, err.Error(), "handle")
}

func TestMediaError_IsAndUnwrap(t *testing.T) {
	inner := fmt.Errorf("низкоуровневая причина")
	err := WrapMediaError(ErrorCodeHandleNotFound, "handle-1", "не найден", inner)

	assert.True(t, errors.Is(err, &MediaError{Code: ErrorCodeHandleNotFound}))
	assert.False(t, errors.Is(err, &MediaError{Code: ErrorCodeSrcEmpty}))
	assert.Equal(t, inner, errors.Unwrap(err))
}

func TestHasErrorCode(t *testing.T) {
	err := NewMediaError(ErrorCodeCallbackMissing, "h", "OnSuccess обязателен")
	wrapped := fmt.Errorf("создание handle: %w", err)

	assert.True(t, HasErrorCode(wrapped, ErrorCodeCallbackMissing))
	assert.False(t, HasErrorCode(wrapped, ErrorCodeSrcEmpty))
	assert.False(t, HasErrorCode(fmt.Errorf("другая ошибка"), ErrorCodeCallbackMissing))
}

func TestMediaErrorCode_String(t *testing.T) {
	assert.Equal(t, "SrcEmpty", ErrorCodeSrcEmpty.String())
	assert.Equal(t, "CallbackMissing", ErrorCodeCallbackMissing.String())
	assert.Equal(t, "Unknown(42)", MediaErrorCode(42).String())
}

func TestNativeCodeOf(t *testing.T) {
	coded := bridge.NewCodedError(3, "ошибка декодирования")
	require.Equal(t, NativeErrDecode, NativeCodeOf(coded))

	wrapped := fmt.Errorf("команда: %w", coded)
	assert.Equal(t, NativeErrDecode, NativeCodeOf(wrapped))

	// Ошибки без кода дают NativeErrNone
	assert.Equal(t, NativeErrNone, NativeCodeOf(fmt.Errorf("обычная ошибка")))
	assert.Equal(t, NativeErrNone, NativeCodeOf(nil))
}

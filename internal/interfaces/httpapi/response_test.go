package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/peladahub/pickup-league/internal/domain/round"
	"github.com/peladahub/pickup-league/internal/usecase"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name       string
		err        error
		wantHTTP   int
		wantReason string
		wantStatus string
	}{
		{"invalid input", fmt.Errorf("%w: bad name", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
		{"not found", fmt.Errorf("%w: player 9", usecase.ErrNotFound), http.StatusNotFound, "notFound", "NOT_FOUND"},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden, "forbidden", "PERMISSION_DENIED"},
		{"dependency unavailable", usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
		{"already finalized", round.ErrAlreadyFinalized, http.StatusConflict, "roundFinalized", "CONFLICT"},
		{"duplicate date", round.ErrDuplicateDate, http.StatusConflict, "duplicateRoundDate", "CONFLICT"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internalError", "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapError(ctx, tc.err)
			require.Equal(t, tc.wantHTTP, mapped.HTTPStatus)
			require.Equal(t, tc.wantReason, mapped.Reason)
			require.Equal(t, tc.wantStatus, mapped.Status)
		})
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	writeSuccess(context.Background(), recorder, http.StatusCreated, map[string]string{"hello": "world"})

	require.Equal(t, http.StatusCreated, recorder.Code)
	require.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var envelope struct {
		APIVersion string            `json:"apiVersion"`
		Data       map[string]string `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Equal(t, "2.0", envelope.APIVersion)
	require.Equal(t, "world", envelope.Data["hello"])
}

func TestWriteErrorEnvelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	writeError(context.Background(), recorder, fmt.Errorf("%w: round 3 was already finalized", round.ErrAlreadyFinalized))

	require.Equal(t, http.StatusConflict, recorder.Code)

	var envelope struct {
		APIVersion string `json:"apiVersion"`
		Error      struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
			Errors  []struct {
				Domain string `json:"domain"`
				Reason string `json:"reason"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, sonic.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Equal(t, "2.0", envelope.APIVersion)
	require.Equal(t, http.StatusConflict, envelope.Error.Code)
	require.Equal(t, "CONFLICT", envelope.Error.Status)
	require.Contains(t, envelope.Error.Message, "already finalized")
	require.Len(t, envelope.Error.Errors, 1)
	require.Equal(t, "pickup-league", envelope.Error.Errors[0].Domain)
	require.Equal(t, "roundFinalized", envelope.Error.Errors[0].Reason)
}

func TestWriteInternalErrorHidesDetails(t *testing.T) {
	recorder := httptest.NewRecorder()
	writeInternalError(context.Background(), recorder)

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Contains(t, recorder.Body.String(), "internal server error")
	require.NotContains(t, recorder.Body.String(), "panic")
}

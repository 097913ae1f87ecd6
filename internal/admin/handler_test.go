package admin

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"vetgate/internal/tokens"
	id "vetgate/pkg/domain"
	"vetgate/pkg/secrets"
	"vetgate/pkg/testutil"
)

const loginSecret = "correct-horse-battery-staple"

func newLoginRouter(t *testing.T, secretHash string) (chi.Router, *tokens.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokenSvc := tokens.NewService("admin-test-key", "vetgate-test", time.Hour)

	r := chi.NewRouter()
	New(tokenSvc, secretHash, logger).Register(r)
	return r, tokenSvc
}

func TestHandleLogin(t *testing.T) {
	hash, err := secrets.Hash(loginSecret)
	require.NoError(t, err)
	router, tokenSvc := newLoginRouter(t, hash)
	reviewerID := uuid.NewString()

	t.Run("valid credentials mint a reviewer token", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/admin/login",
			map[string]string{"reviewer_id": reviewerID, "secret": loginSecret}))

		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[LoginResponse](t, rr)

		got, err := tokenSvc.ValidateToken(resp.Token)
		require.NoError(t, err)
		require.Equal(t, reviewerID, got.String())
	})

	t.Run("wrong secret is unauthorized", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/admin/login",
			map[string]string{"reviewer_id": reviewerID, "secret": "guess"}))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("missing secret fails validation", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/admin/login",
			map[string]string{"reviewer_id": reviewerID}))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation")
	})

	t.Run("malformed reviewer id is rejected", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/admin/login",
			map[string]string{"reviewer_id": "not-a-uuid", "secret": loginSecret}))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_input")
	})

	t.Run("nil reviewer id is rejected", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/admin/login",
			map[string]string{"reviewer_id": id.ReviewerID{}.String(), "secret": loginSecret}))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_input")
	})
}

func TestHandleLoginUnconfigured(t *testing.T) {
	router, _ := newLoginRouter(t, "")

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/admin/login",
		map[string]string{"reviewer_id": uuid.NewString(), "secret": loginSecret}))
	testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "internal_error")
}

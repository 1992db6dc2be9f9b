package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
)

type whoamiOutput struct {
	Body struct {
		UserID string `json:"userId"`
	}
}

// newGatedAPI registers one protected route and one public route behind the
// identity middleware.
func newGatedAPI(t *testing.T) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(api, NewResolver("duitku_session", "duitku_guest", testSecret)))

	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/whoami",
	}, func(ctx context.Context, _ *struct{}) (*whoamiOutput, error) {
		out := &whoamiOutput{}
		out.Body.UserID = FromContext(ctx).UserID
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Metadata:    map[string]any{MetadataPublic: true},
	}, func(context.Context, *struct{}) (*struct{}, error) {
		return &struct{}{}, nil
	})

	return api
}

func TestMiddleware_AnonymousRejected(t *testing.T) {
	resp := newGatedAPI(t).Get("/whoami")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestMiddleware_GuestRejected(t *testing.T) {
	guestID := uuid.Must(uuid.NewV4()).String()

	resp := newGatedAPI(t).Get("/whoami", "Cookie: duitku_guest="+guestID)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestMiddleware_AccountPassesWithIdentity(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4()).String()
	token := SignToken(testSecret, accountID)

	resp := newGatedAPI(t).Get("/whoami", "Cookie: duitku_session="+token)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		UserID string `json:"userId"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, accountID, body.UserID)
}

func TestMiddleware_SessionWinsOverGuestCookie(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4()).String()
	guestID := uuid.Must(uuid.NewV4()).String()
	token := SignToken(testSecret, accountID)

	resp := newGatedAPI(t).Get("/whoami",
		"Cookie: duitku_session="+token+"; duitku_guest="+guestID)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		UserID string `json:"userId"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, accountID, body.UserID)
}

func TestMiddleware_PublicRouteSkipsGate(t *testing.T) {
	resp := newGatedAPI(t).Get("/ping")

	assert.Equal(t, http.StatusNoContent, resp.Code)
}

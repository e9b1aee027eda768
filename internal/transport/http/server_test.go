package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/service"
)

const (
	adminToken     = "admin-token"
	travellerToken = "traveller-token"
	superToken     = "super-token"
)

type testAPI struct {
	e            *echo.Echo
	transactions *stubTransactions
	bookings     *stubBookings
	profiles     *stubProfiles
	destinations *stubDestinations
	reviews      *stubReviews

	admin     domain.Profile
	traveller domain.Profile
	trip      domain.Destination
	booking   domain.Booking
}

func newTestAPI(t *testing.T, policy domain.AdminPolicy) *testAPI {
	t.Helper()

	admin := domain.Profile{ID: uuid.New(), Email: "admin@sanchari.test", Role: domain.RoleAdmin}
	traveller := domain.Profile{ID: uuid.New(), Email: "traveller@sanchari.test", Role: domain.RoleUser}
	trip := domain.Destination{ID: uuid.New(), Name: "Alleppey", Country: "India", PricePerPerson: 500}
	booking := domain.Booking{
		ID:          uuid.New(),
		UserID:      traveller.ID,
		TripID:      trip.ID,
		TotalAmount: 1000,
		Status:      domain.BookingStatusUpcoming,
	}

	api := &testAPI{
		transactions: newStubTransactions(),
		bookings:     &stubBookings{rows: map[uuid.UUID]domain.Booking{booking.ID: booking}},
		profiles:     &stubProfiles{rows: map[uuid.UUID]domain.Profile{admin.ID: admin, traveller.ID: traveller}},
		destinations: &stubDestinations{rows: map[uuid.UUID]domain.Destination{trip.ID: trip}},
		admin:        admin,
		traveller:    traveller,
		trip:         trip,
		booking:      booking,
	}

	api.bookings.transactions = api.transactions
	api.reviews = &stubReviews{}

	identities := stubIdentities{
		adminToken:     {ID: admin.ID, Email: admin.Email},
		travellerToken: {ID: traveller.ID, Email: traveller.Email},
		superToken:     {ID: uuid.New(), Email: "root@sanchari.test", IsSuperAdmin: true},
	}

	auth := service.NewAuthService(identities, api.profiles, policy)
	transactions := service.NewTransactionService(api.transactions, api.bookings, api.profiles, api.destinations, service.TransactionServiceConfig{})
	bookings := service.NewBookingService(api.bookings)
	profiles := service.NewProfileService(api.profiles)
	destinations := service.NewDestinationService(api.destinations, nil, service.DestinationServiceConfig{})
	reviews := service.NewReviewService(api.reviews, api.destinations)
	imports := service.NewDestinationImportService(api.destinations, nil, service.DestinationImportServiceConfig{MaxFileBytes: 1024})

	e := NewRouter(RouterConfig{})
	adminGroup := NewAdminGroup(e, auth, 1000)
	RegisterAdminTransactions(adminGroup, transactions)
	RegisterAdminUsers(adminGroup, profiles)
	RegisterDestinations(e, adminGroup, destinations)
	RegisterDestinationImports(adminGroup, imports)
	RegisterAccount(e, auth, transactions, bookings)
	RegisterReviews(e, adminGroup, reviews)
	RegisterDebug(e, auth)
	api.e = e
	return api
}

func (a *testAPI) payment(status domain.TransactionStatus, amount float64) domain.Transaction {
	return a.transactions.put(domain.Transaction{
		UserID:        &a.traveller.ID,
		BookingID:     &a.booking.ID,
		Amount:        amount,
		PaymentMethod: "card",
		Status:        status,
	})
}

func (a *testAPI) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) upload(t *testing.T, path, token, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	require.Equal(t, message, decodeBody(t, rec)["error"])
}

var _ http.Handler = (*echo.Echo)(nil)

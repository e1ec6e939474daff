package balancedelivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-petr/point-bank/internal/domain"
	"github.com/go-petr/point-bank/pkg/errorspkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newEngine(h Handler) *gin.Engine {
	engine := gin.New()
	engine.GET("/points/:id", h.Get)
	engine.PATCH("/points/:id/charge", h.Charge)
	engine.PATCH("/points/:id/deduct", h.Deduct)

	return engine
}

type responseBody struct {
	Data struct {
		Balance domain.Balance `json:"balance"`
	} `json:"data"`
	Error string `json:"error"`
}

func testBalance(userID, points int64) domain.Balance {
	return domain.Balance{
		UserID:    userID,
		Points:    points,
		UpdatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func TestGet(t *testing.T) {
	balance := testBalance(1, 500)

	testCases := []struct {
		name           string
		url            string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
		wantBalance    *domain.Balance
	}{
		{
			name: "OK",
			url:  "/points/1",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(balance, nil)
			},
			wantStatusCode: http.StatusOK,
			wantBalance:    &balance,
		},
		{
			name: "NegativeUserID",
			url:  "/points/-5",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "UserID must be at least 1",
		},
		{
			name: "InternalError",
			url:  "/points/1",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(int64(1))).
					Times(1).
					Return(domain.Balance{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			tc.buildStubs(service)

			engine := newEngine(NewHandler(service))

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, tc.url, nil)
			engine.ServeHTTP(recorder, request)

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("status code = %d, want %d", recorder.Code, tc.wantStatusCode)
			}

			var res responseBody
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("decoding response returned error: %v", err)
			}

			if res.Error != tc.wantError {
				t.Errorf("error = %q, want %q", res.Error, tc.wantError)
			}

			if tc.wantBalance != nil {
				compareUpdatedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(*tc.wantBalance, res.Data.Balance, compareUpdatedAt); diff != "" {
					t.Errorf("res.Data.Balance mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestChargeAndDeduct(t *testing.T) {
	charged := testBalance(1, 1500)
	deducted := testBalance(1, 500)

	testCases := []struct {
		name           string
		path           string
		body           any
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
		wantBalance    *domain.Balance
	}{
		{
			name: "ChargeOK",
			path: "/points/1/charge",
			body: gin.H{"amount": 500},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Charge(gomock.Any(), gomock.Eq(int64(1)), gomock.Eq(int64(500))).
					Times(1).
					Return(charged, nil)
			},
			wantStatusCode: http.StatusOK,
			wantBalance:    &charged,
		},
		{
			name: "DeductOK",
			path: "/points/1/deduct",
			body: gin.H{"amount": 500},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Deduct(gomock.Any(), gomock.Eq(int64(1)), gomock.Eq(int64(500))).
					Times(1).
					Return(deducted, nil)
			},
			wantStatusCode: http.StatusOK,
			wantBalance:    &deducted,
		},
		{
			name: "MissingAmount",
			path: "/points/1/charge",
			body: gin.H{},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Charge(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount is required",
		},
		{
			name: "NegativeAmount",
			path: "/points/1/deduct",
			body: gin.H{"amount": -100},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Deduct(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount must be greater than 0",
		},
		{
			name: "NegativeUserID",
			path: "/points/-5/charge",
			body: gin.H{"amount": 100},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Charge(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "UserID must be at least 1",
		},
		{
			name: "Overflow",
			path: "/points/1/charge",
			body: gin.H{"amount": 1500},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Charge(gomock.Any(), gomock.Eq(int64(1)), gomock.Eq(int64(1500))).
					Times(1).
					Return(domain.Balance{}, domain.OverflowError{Remaining: 1000})
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "maximum point limit exceeded: you can charge up to 1000 more",
		},
		{
			name: "InsufficientPoints",
			path: "/points/1/deduct",
			body: gin.H{"amount": 1500},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Deduct(gomock.Any(), gomock.Eq(int64(1)), gomock.Eq(int64(1500))).
					Times(1).
					Return(domain.Balance{}, domain.InsufficientPointsError{Current: 500})
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "insufficient points: your current balance is 500",
		},
		{
			name: "LockWaitTimeout",
			path: "/points/1/charge",
			body: gin.H{"amount": 100},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Charge(gomock.Any(), gomock.Eq(int64(1)), gomock.Eq(int64(100))).
					Times(1).
					Return(domain.Balance{}, context.DeadlineExceeded)
			},
			wantStatusCode: http.StatusRequestTimeout,
			wantError:      context.DeadlineExceeded.Error(),
		},
		{
			name: "InternalError",
			path: "/points/1/charge",
			body: gin.H{"amount": 100},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Charge(gomock.Any(), gomock.Eq(int64(1)), gomock.Eq(int64(100))).
					Times(1).
					Return(domain.Balance{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			tc.buildStubs(service)

			engine := newEngine(NewHandler(service))

			body, err := json.Marshal(tc.body)
			if err != nil {
				t.Fatalf("json.Marshal(%v) returned error: %v", tc.body, err)
			}

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPatch, tc.path, bytes.NewReader(body))
			request.Header.Set("Content-Type", "application/json")
			engine.ServeHTTP(recorder, request)

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("status code = %d, want %d, body: %s", recorder.Code, tc.wantStatusCode, recorder.Body)
			}

			var res responseBody
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("decoding response returned error: %v", err)
			}

			if res.Error != tc.wantError {
				t.Errorf("error = %q, want %q", res.Error, tc.wantError)
			}

			if tc.wantBalance != nil {
				compareUpdatedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(*tc.wantBalance, res.Data.Balance, compareUpdatedAt); diff != "" {
					t.Errorf("res.Data.Balance mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

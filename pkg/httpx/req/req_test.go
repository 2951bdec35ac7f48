package req_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"money_saver/pkg/errcodes"
	"money_saver/pkg/httpx/req"
)

type watchRequest struct {
	Category    string `json:"category"    validate:"required"`
	MinDiscount int    `json:"minDiscount" validate:"min=0,max=100"`
}

func TestRead(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name        string
		body        string
		wantErr     bool
		description string
	}{
		{
			name: "Valid",
			body: `{"category":"美食","minDiscount":30}`,
		},
		{
			name:        "Empty body",
			body:        "",
			wantErr:     true,
			description: "Empty request body",
		},
		{
			name:        "Wrong type",
			body:        `{"category":1}`,
			wantErr:     true,
			description: "Invalid JSON",
		},
		{
			name:        "Missing field",
			body:        `{"minDiscount":30}`,
			wantErr:     true,
			description: "watchRequest.Category: failed required",
		},
		{
			name:        "Out of range",
			body:        `{"category":"美食","minDiscount":120}`,
			wantErr:     true,
			description: "watchRequest.MinDiscount: failed max=100",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

			var dest watchRequest

			err := req.Read(r, &dest)
			if !tc.wantErr {
				rq.NoError(err)
				rq.Equal(watchRequest{Category: "美食", MinDiscount: 30}, dest)

				return
			}

			rq.Error(err)
			rq.True(failure.IsInvalidArgumentError(err))
			rq.Equal(errcodes.ValidationError, failure.Code(err))
			rq.Equal(tc.description, failure.Description(err))
		})
	}
}

func TestRead_TooLarge(t *testing.T) {
	rq := require.New(t)

	body := `{"category":"` + strings.Repeat("a", req.MaxBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var dest watchRequest

	err := req.Read(r, &dest)
	rq.Error(err)
	rq.Equal(errcodes.ValidationError, failure.Code(err))
}

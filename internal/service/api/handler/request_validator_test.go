package handler

import (
	"errors"
	"sync"
	"testing"

	"github.com/darkkaiser/mws-feed/internal/service/api/v1/model/request"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValidator_Concurrency(t *testing.T) {
	var wg sync.WaitGroup
	const routines = 100
	validators := make([]*validator.Validate, routines)

	wg.Add(routines)
	for i := 0; i < routines; i++ {
		go func(index int) {
			defer wg.Done()
			validators[index] = getValidator()
		}(i)
	}
	wg.Wait()

	for i := 1; i < routines; i++ {
		assert.Same(t, validators[0], validators[i])
	}
}

func TestValidateRequest_FeedQuery(t *testing.T) {
	tests := []struct {
		name   string
		req    *request.FeedQuery
		errMsg []string
	}{
		{name: "Empty", req: &request.FeedQuery{}},
		{name: "All Set", req: &request.FeedQuery{PurgeAndReplace: "true", Pretty: "0", Validate: "FALSE", Save: "1", Format: "json"}},
		{name: "Format XML", req: &request.FeedQuery{Format: "xml"}},
		{
			name:   "Invalid Boolean",
			req:    &request.FeedQuery{Pretty: "yes"},
			errMsg: []string{"pretty", "true 또는 false", "'yes'"},
		},
		{
			name:   "Invalid Format",
			req:    &request.FeedQuery{Format: "csv"},
			errMsg: []string{"format", "xml json", "'csv'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if len(tt.errMsg) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			msg := FormatValidationError(err)
			for _, expect := range tt.errMsg {
				assert.Contains(t, msg, expect)
			}
		})
	}
}

type testStruct struct {
	Name       string `validate:"required,min=2" korean:"이름"`
	Count      int    `validate:"min=1,max=100" korean:"개수"`
	Homepage   string `validate:"omitempty,url" korean:"홈페이지"`
	Bio        string `validate:"max=10" korean:"자기소개"`
	NoTagField string `validate:"required"`
	UnknownTag string `validate:"omitempty,alpha"`
}

func valid() testStruct {
	return testStruct{Name: "Lee", Count: 10, NoTagField: "exist"}
}

func TestFormatValidationError_Tags(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*testStruct)
		errMsg []string
	}{
		{name: "Min Len (String)", modify: func(s *testStruct) { s.Name = "a" }, errMsg: []string{"이름", "최소 2자"}},
		{name: "Min Value (Int)", modify: func(s *testStruct) { s.Count = 0 }, errMsg: []string{"개수", "최소 1 이상"}},
		{name: "Max Value (Int)", modify: func(s *testStruct) { s.Count = 101 }, errMsg: []string{"개수", "최대 100까지"}},
		{name: "Max Len (String)", modify: func(s *testStruct) { s.Bio = "Too long bio" }, errMsg: []string{"자기소개", "최대 10자"}},
		{name: "URL Invalid", modify: func(s *testStruct) { s.Homepage = "invalid" }, errMsg: []string{"홈페이지", "올바른 URL 형식"}},
		{name: "Fallback to Field Name", modify: func(s *testStruct) { s.NoTagField = "" }, errMsg: []string{"NoTagField", "필수"}},
		{name: "Unknown Tag", modify: func(s *testStruct) { s.UnknownTag = "123" }, errMsg: []string{"UnknownTag", "검증 실패", "alpha"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.modify(&s)

			err := ValidateRequest(&s)
			require.Error(t, err)
			msg := FormatValidationError(err)
			for _, expect := range tt.errMsg {
				assert.Contains(t, msg, expect)
			}
		})
	}
}

func TestFormatValidationError_EdgeCases(t *testing.T) {
	t.Run("Nil Error", func(t *testing.T) {
		assert.Equal(t, "", FormatValidationError(nil))
	})

	t.Run("Non-Validation Error", func(t *testing.T) {
		assert.Equal(t, "standard error", FormatValidationError(errors.New("standard error")))
	})

	t.Run("Empty Validation Errors", func(t *testing.T) {
		empty := validator.ValidationErrors{}
		assert.Equal(t, empty.Error(), FormatValidationError(empty))
	})
}

package cronx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{"매일 새벽 3시", "0 0 3 * * *", false},
		{"5분마다", "0 */5 * * * *", false},
		{"월 이름", "0 0 1 1 JAN *", false},
		{"@daily", "@daily", false},
		{"@every", "@every 1h30m", false},

		{"5필드 미지원", "0 3 * * *", true},
		{"빈 문자열", "", true},
		{"범위 초과", "0 60 * * * *", true},
		{"알 수 없는 Descriptor", "@sometimes", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Cron 표현식 파싱 실패")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStandardParser_NextRun(t *testing.T) {
	t.Parallel()

	schedule, err := StandardParser().Parse("0 0 3 * * *")
	require.NoError(t, err)

	from := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 2, 3, 0, 0, 0, time.UTC), schedule.Next(from))
}

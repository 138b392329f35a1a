package notification

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/darkkaiser/mws-feed/internal/pkg/mark"
	"github.com/darkkaiser/mws-feed/pkg/strutil"
)

const (
	// maxTitleLength 제목의 최대 길이 (룬 단위)
	maxTitleLength = 200

	// titleFormat 제목이 포함된 메시지 포맷
	titleFormat = "<b>【 %s 】</b>\n\n%s"

	// errorFormat 오류 알림 메시지 포맷
	errorFormat = "%s\n\n*** 오류가 발생하였습니다. ***%s"
)

// buildMessage 제목과 오류 표시를 붙인 HTML 메시지를 만듭니다. 제목과 본문은 HTML 이스케이프됩니다.
func buildMessage(title, message string, errorOccurred bool) string {
	message = html.EscapeString(message)

	if title = strings.TrimSpace(title); title != "" {
		if utf8.RuneCountInString(title) > maxTitleLength {
			title = string([]rune(title)[:maxTitleLength]) + "..."
		}
		message = fmt.Sprintf(titleFormat, html.EscapeString(title), message)
	}

	if errorOccurred {
		message = fmt.Sprintf(errorFormat, message, mark.Alert.WithSpace())
	}

	return message
}

// splitMessage 메시지를 limit 바이트 이하의 조각으로 나눕니다.
//
// 가능한 한 줄 단위로 나누고, 한 줄이 limit을 넘을 때만 UTF-8 문자 경계에서 강제로 자릅니다.
func splitMessage(message string, limit int) []string {
	if len(message) <= limit {
		return []string{message}
	}

	var chunks []string
	var sb strings.Builder
	sb.Grow(limit)

	flush := func() {
		if sb.Len() > 0 {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
	}

	for line := range strings.SplitSeq(message, "\n") {
		needed := len(line)
		if sb.Len() > 0 {
			needed++
		}

		if sb.Len()+needed <= limit {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(line)
			continue
		}

		flush()

		for len(line) > limit {
			var chunk string
			chunk, line = strutil.SafeSplit(line, limit)
			chunks = append(chunks, chunk)
		}
		sb.WriteString(line)
	}
	flush()

	return chunks
}
